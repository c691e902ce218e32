package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// ConsecutiveSlotAptitude scales an item's aptitude on the day after a slot
// ends, depending on which slot it covered and which slot follows.
// multipliers is indexed [preceding slot][following slot].
type ConsecutiveSlotAptitude struct {
	multipliers [][]float32
	slotLengths []int
}

func NewConsecutiveSlotAptitude(multipliers [][]float32, slotLengths []int) *ConsecutiveSlotAptitude {
	return &ConsecutiveSlotAptitude{
		multipliers: multipliers,
		slotLengths: slotLengths,
	}
}

func (e *ConsecutiveSlotAptitude) Name() string {
	return "ConsecutiveSlotAptitude"
}

func (e *ConsecutiveSlotAptitude) Apply(m *matrix.ShiftMatrix, day, slot int) {
	item, ok := chosenItem(m, day, slot)
	if !ok {
		return
	}

	next := day + e.slotLengths[slot]
	if next >= m.Days() {
		return
	}

	for s := 0; s < m.Slots(); s++ {
		if cell := m.At(next, s); !cell.Processed {
			cell.CurrentAptitudes[item] *= e.multipliers[slot][s]
		}
	}
}
