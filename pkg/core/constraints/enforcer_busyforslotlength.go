package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// ItemIsBusyForSlotLength keeps an item off every slot for the remaining
// days of a multi-day slot it covers
type ItemIsBusyForSlotLength struct {
	slotLengths []int
}

func NewItemIsBusyForSlotLength(slotLengths []int) *ItemIsBusyForSlotLength {
	return &ItemIsBusyForSlotLength{slotLengths: slotLengths}
}

func (e *ItemIsBusyForSlotLength) Name() string {
	return "ItemIsBusyForSlotLength"
}

func (e *ItemIsBusyForSlotLength) Apply(m *matrix.ShiftMatrix, day, slot int) {
	item, ok := chosenItem(m, day, slot)
	if !ok {
		return
	}

	lastDay := min(day+e.slotLengths[slot]-1, m.Days()-1)
	for d := day + 1; d <= lastDay; d++ {
		zeroItem(m, d, item)
	}
}
