package specimen

import (
	"errors"
	"math/rand/v2"
)

// ErrNoPresets is returned when a picker is built from an empty list.
var ErrNoPresets = errors.New("no presets available")

// IndexFunc returns an index in [0, n).
type IndexFunc func(n int) int

// UniformIndex draws uniformly from the process-wide random source.
func UniformIndex(n int) int {
	return rand.IntN(n)
}

// Picker selects presets from a fixed list.
type Picker struct {
	presets []Preset
	index   IndexFunc
}

// NewPicker creates a picker over presets. A nil index function means UniformIndex.
func NewPicker(presets []Preset, index IndexFunc) (*Picker, error) {
	if len(presets) == 0 {
		return nil, ErrNoPresets
	}
	if index == nil {
		index = UniformIndex
	}
	list := make([]Preset, len(presets))
	copy(list, presets)
	return &Picker{presets: list, index: index}, nil
}

// Pick returns one preset. Out-of-range indexes from a custom IndexFunc are wrapped.
func (p *Picker) Pick() Preset {
	n := len(p.presets)
	i := p.index(n) % n
	if i < 0 {
		i += n
	}
	return p.presets[i]
}

// Presets returns a copy of the list the picker draws from.
func (p *Picker) Presets() []Preset {
	out := make([]Preset, len(p.presets))
	copy(out, p.presets)
	return out
}

// Len returns the number of presets.
func (p *Picker) Len() int {
	return len(p.presets)
}
