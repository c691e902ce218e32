package matrix

import (
	"github.com/jakechorley/shiftgen/pkg/core/selection"
)

// AllocationState is the decode state of one (day, slot) cell.
//
// InitialAptitudes is the baseline set when the matrix is built.
// CurrentAptitudes is the working copy that enforcers scale or zero during a
// decode pass. Forced cells are fixed by configuration and are never
// decoded again; a forced cell is always processed.
type AllocationState struct {
	InitialAptitudes []float32
	CurrentAptitudes []float32
	Forced           bool
	Processed        bool
	ChosenItem       *int
}

func newAllocationState(items int, defaultAptitude float32) *AllocationState {
	s := &AllocationState{
		InitialAptitudes: make([]float32, items),
		CurrentAptitudes: make([]float32, items),
	}
	for i := range s.InitialAptitudes {
		s.InitialAptitudes[i] = defaultAptitude
	}
	s.Reset()
	return s
}

// Force fixes the outcome of the cell. A nil item leaves the cell empty.
func (s *AllocationState) Force(item *int) {
	s.ChosenItem = item
	s.Forced = true
	s.Processed = true
}

// Reset clears the cell, forced or not, and restores the initial aptitudes
func (s *AllocationState) Reset() {
	s.Forced = false
	s.Processed = false
	s.ChosenItem = nil
	copy(s.CurrentAptitudes, s.InitialAptitudes)
}

// ResetIfNotForced is the per-decode reset; forced cells are left untouched
func (s *AllocationState) ResetIfNotForced() {
	if s.Forced {
		return
	}
	s.Reset()
}

// Process chooses an item for the cell by spinning the roulette wheel over
// the current aptitudes with x. The result is nil when every aptitude is
// zero.
func (s *AllocationState) Process(x float32) *int {
	if s.Forced || s.Processed {
		panic("matrix: process called on a forced or already processed cell")
	}

	s.ChosenItem = nil
	if item, ok := selection.Roulette(s.CurrentAptitudes, x); ok {
		s.ChosenItem = &item
	}
	s.Processed = true

	return s.ChosenItem
}

// HasChosen reports whether the cell is processed and covered by an item
func (s *AllocationState) HasChosen() bool {
	return s.Processed && s.ChosenItem != nil
}
