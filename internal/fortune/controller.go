package fortune

import (
	"sync"

	"github.com/f3rmion/oasis/internal/specimen"
)

// Snapshot is a copy of the controller state.
type Snapshot struct {
	State        ViewState
	Selection    specimen.Preset
	HasSelection bool
}

// Controller owns the current view state and selected preset.
type Controller struct {
	mu sync.RWMutex

	picker       *specimen.Picker
	state        ViewState
	selection    specimen.Preset
	hasSelection bool
}

// NewController creates a controller in the Start state.
func NewController(picker *specimen.Picker) *Controller {
	return &Controller{picker: picker, state: Start}
}

// RequestGenerate moves to Generating and selects a preset.
// It returns false, changing nothing, unless the controller is in Start.
func (c *Controller) RequestGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := Transition(c.state, EventGenerate)
	if !ok {
		return false
	}
	c.state = next
	c.selection = c.picker.Pick()
	c.hasSelection = true
	return true
}

// CompleteGenerate moves from Generating to Result once the generation delay elapsed.
func (c *Controller) CompleteGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := Transition(c.state, EventGenerated)
	if !ok || !c.hasSelection {
		return false
	}
	c.state = next
	return true
}

// RequestReset returns to Start unconditionally.
func (c *Controller) RequestReset() {
	c.mu.Lock()
	c.state, _ = Transition(c.state, EventReset)
	c.mu.Unlock()
}

// State returns the current view state.
func (c *Controller) State() ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Selection returns the most recently selected preset.
func (c *Controller) Selection() (specimen.Preset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection, c.hasSelection
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{State: c.state, Selection: c.selection, HasSelection: c.hasSelection}
}
