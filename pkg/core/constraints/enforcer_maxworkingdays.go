package constraints

import (
	"fmt"

	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// MaxWorkingDays forces a rest period once an item has worked the maximum
// number of consecutive days
type MaxWorkingDays struct {
	maxWorkingDays int
	restDays       int
}

func NewMaxWorkingDays(maxWorkingDays, restDays int) *MaxWorkingDays {
	return &MaxWorkingDays{
		maxWorkingDays: maxWorkingDays,
		restDays:       restDays,
	}
}

func (e *MaxWorkingDays) Name() string {
	return "MaxWorkingDays"
}

func (e *MaxWorkingDays) Apply(m *matrix.ShiftMatrix, day, slot int) {
	item, ok := chosenItem(m, day, slot)
	if !ok {
		return
	}

	// Count backwards the run of consecutive days ending today
	workingDays := 1
	for d := day - 1; d >= 0 && workingDays < e.maxWorkingDays; d-- {
		if !worksOn(m, d, item) {
			break
		}
		workingDays++
	}

	if workingDays > e.maxWorkingDays {
		panic(fmt.Sprintf("constraints: item %d worked %d consecutive days, max is %d", item, workingDays, e.maxWorkingDays))
	}
	if workingDays < e.maxWorkingDays {
		return
	}

	lastDay := min(day+e.restDays, m.Days()-1)
	for d := day + 1; d <= lastDay; d++ {
		zeroItem(m, d, item)
	}
}

func worksOn(m *matrix.ShiftMatrix, day, item int) bool {
	for s := 0; s < m.Slots(); s++ {
		if chosen := m.At(day, s).ChosenItem; chosen != nil && *chosen == item {
			return true
		}
	}
	return false
}
