package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// NoUbiquityOverIncompatibleSlots stops an item from covering two
// incompatible slots at once, for every day the chosen slot spans.
// A nil compatibility matrix makes every pair of slots incompatible.
type NoUbiquityOverIncompatibleSlots struct {
	compatibleSlots [][]bool
	slotLengths     []int
}

func NewNoUbiquityOverIncompatibleSlots(compatibleSlots [][]bool, slotLengths []int, slots int) *NoUbiquityOverIncompatibleSlots {
	if compatibleSlots == nil {
		compatibleSlots = make([][]bool, slots)
		for s := range compatibleSlots {
			compatibleSlots[s] = make([]bool, slots)
		}
	}
	if slotLengths == nil {
		slotLengths = make([]int, slots)
		for s := range slotLengths {
			slotLengths[s] = 1
		}
	}
	return &NoUbiquityOverIncompatibleSlots{
		compatibleSlots: compatibleSlots,
		slotLengths:     slotLengths,
	}
}

func (e *NoUbiquityOverIncompatibleSlots) Name() string {
	return "NoUbiquityOverIncompatibleSlots"
}

func (e *NoUbiquityOverIncompatibleSlots) Apply(m *matrix.ShiftMatrix, day, slot int) {
	item, ok := chosenItem(m, day, slot)
	if !ok {
		return
	}

	lastDay := min(day+e.slotLengths[slot]-1, m.Days()-1)
	for d := day; d <= lastDay; d++ {
		for s := 0; s < m.Slots(); s++ {
			if e.compatibleSlots[slot][s] {
				continue
			}
			if cell := m.At(d, s); !cell.Processed {
				cell.CurrentAptitudes[item] = 0
			}
		}
	}
}
