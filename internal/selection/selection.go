// Package selection holds the user's current position in a dataset's
// parameter space: the active parameter and one value index per parameter.
//
// A State is mutated only through its setters (or Apply with a Command).
// Every setter validates before it writes, so a rejected call leaves the
// state exactly as it was.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mwiater/cosmoview/internal/dataset"
)

// ErrIndexOutOfRange is returned when a parameter or value index lies
// outside the dataset's bounds.
var ErrIndexOutOfRange = errors.New("index out of range")

// Selection is a snapshot of a State.
type Selection struct {
	// Parameter is the active parameter index.
	Parameter int `json:"parameter" yaml:"parameter"`
	// Value is the value index of the active parameter.
	Value int `json:"value" yaml:"value"`
	// Values holds the value index of every parameter. In the scan layout
	// only Values[Parameter] addresses a curve.
	Values []int `json:"values" yaml:"values"`
}

// State is the mutable selection for one dataset.
type State struct {
	ds     *dataset.Dataset
	param  int
	values []int
}

// New returns a State positioned at the dataset's default selection.
func New(ds *dataset.Dataset) *State {
	s := &State{ds: ds}
	s.Reset()
	return s
}

// Reset returns to the default selection.
func (s *State) Reset() {
	s.param, s.values = s.ds.Defaults()
}

// Get returns a copy of the current selection.
func (s *State) Get() Selection {
	return Selection{
		Parameter: s.param,
		Value:     s.values[s.param],
		Values:    slices.Clone(s.values),
	}
}

// Key returns the curve key of the current selection.
func (s *State) Key() dataset.Key {
	return s.ds.KeyFor(s.param, s.values)
}

// Count returns the number of values of the active parameter.
func (s *State) Count() int {
	p, _ := s.ds.Parameter(s.param)
	return p.Count()
}

// SetParameter activates parameter i and resets its value index to 0.
func (s *State) SetParameter(i int) error {
	if i < 0 || i >= s.ds.NumParameters() {
		return fmt.Errorf("%w: parameter %d not in [0, %d)", ErrIndexOutOfRange, i, s.ds.NumParameters())
	}
	s.param = i
	s.values[i] = 0
	return nil
}

// SetValue selects value i of the active parameter.
func (s *State) SetValue(i int) error {
	if n := s.Count(); i < 0 || i >= n {
		return fmt.Errorf("%w: value %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	s.values[s.param] = i
	return nil
}

// SetValues replaces every value index at once. The active parameter is
// kept. values must have one in-range entry per parameter.
func (s *State) SetValues(values []int) error {
	if len(values) != s.ds.NumParameters() {
		return fmt.Errorf("%w: %d value indices for %d parameters", ErrIndexOutOfRange, len(values), s.ds.NumParameters())
	}
	for i, v := range values {
		p, _ := s.ds.Parameter(i)
		if v < 0 || v >= p.Count() {
			return fmt.Errorf("%w: value %d of %s not in [0, %d)", ErrIndexOutOfRange, v, p.Name, p.Count())
		}
	}
	copy(s.values, values)
	return nil
}

// Step moves the active value index by delta. Without wrap the result is
// clamped into range; with wrap it cycles.
func (s *State) Step(delta int, wrap bool) {
	n := s.Count()
	v := s.values[s.param] + delta
	if wrap {
		v = ((v % n) + n) % n
	} else {
		v = max(0, min(v, n-1))
	}
	s.values[s.param] = v
}
