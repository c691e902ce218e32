package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// Enforcer propagates a decode decision to the cells that are still open.
//
// Apply is called right after the cell at (day, slot) has been processed. It
// may only change CurrentAptitudes of cells that are not yet processed.
type Enforcer interface {
	Name() string
	Apply(m *matrix.ShiftMatrix, day, slot int)
}

// chosenItem returns the item covering the cell, if any
func chosenItem(m *matrix.ShiftMatrix, day, slot int) (int, bool) {
	chosen := m.At(day, slot).ChosenItem
	if chosen == nil {
		return 0, false
	}
	return *chosen, true
}

// zeroItem removes the item from every open slot of the day
func zeroItem(m *matrix.ShiftMatrix, day, item int) {
	for s := 0; s < m.Slots(); s++ {
		if cell := m.At(day, s); !cell.Processed {
			cell.CurrentAptitudes[item] = 0
		}
	}
}
