package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// CrossItemAptitude models synergy or antagonism between items working the
// same day: once an item covers a slot, the aptitude of every other item for
// every other slot that day is scaled by multipliers[slot][s][item][other].
type CrossItemAptitude struct {
	multipliers [][][][]float32
}

func NewCrossItemAptitude(multipliers [][][][]float32) *CrossItemAptitude {
	return &CrossItemAptitude{multipliers: multipliers}
}

func (e *CrossItemAptitude) Name() string {
	return "CrossItemAptitude"
}

func (e *CrossItemAptitude) Apply(m *matrix.ShiftMatrix, day, slot int) {
	item, ok := chosenItem(m, day, slot)
	if !ok {
		return
	}

	for s := 0; s < m.Slots(); s++ {
		if s == slot {
			continue
		}
		cell := m.At(day, s)
		if cell.Processed {
			continue
		}
		for other := 0; other < m.Items(); other++ {
			if other == item {
				continue
			}
			if mult := e.multipliers[slot][s][item][other]; mult != 1 {
				cell.CurrentAptitudes[other] *= mult
			}
		}
	}
}
