// Package fortune holds the view state machine that drives card generation.
package fortune

// ViewState is the screen currently shown.
type ViewState int

const (
	Start ViewState = iota
	Generating
	Result
)

func (s ViewState) String() string {
	switch s {
	case Start:
		return "START"
	case Generating:
		return "GENERATING"
	case Result:
		return "RESULT"
	default:
		return "UNKNOWN"
	}
}

// Event is a request to move between view states.
type Event int

const (
	EventGenerate  Event = iota // User asked for a new card
	EventGenerated              // Generation delay elapsed
	EventReset                  // User went back to the start screen
)

func (e Event) String() string {
	switch e {
	case EventGenerate:
		return "generate"
	case EventGenerated:
		return "generated"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Transition returns the state that follows s on e.
// The boolean is false when e is not valid in s; the returned state is then s.
func Transition(s ViewState, e Event) (ViewState, bool) {
	switch e {
	case EventReset:
		return Start, true
	case EventGenerate:
		if s != Start {
			return s, false
		}
		return Generating, true
	case EventGenerated:
		if s != Generating {
			return s, false
		}
		return Result, true
	}
	return s, false
}
