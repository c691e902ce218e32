package matrix

import (
	"fmt"
	"strings"
)

// ShiftMatrix owns the Days x Slots grid of allocation states. Cells are
// stored row-major in a single slice, indexed day*slots+slot.
//
// A matrix is owned by one decode context and is not safe for concurrent use.
type ShiftMatrix struct {
	days  int
	slots int
	items int
	cells []*AllocationState
}

// New creates a matrix where every cell starts with the default aptitude for
// every item
func New(days, slots, items int, defaultAptitude float32) *ShiftMatrix {
	m := &ShiftMatrix{
		days:  days,
		slots: slots,
		items: items,
		cells: make([]*AllocationState, days*slots),
	}
	for i := range m.cells {
		m.cells[i] = newAllocationState(items, defaultAptitude)
	}
	return m
}

func (m *ShiftMatrix) Days() int  { return m.days }
func (m *ShiftMatrix) Slots() int { return m.slots }
func (m *ShiftMatrix) Items() int { return m.items }

// At returns the cell for the given day and slot
func (m *ShiftMatrix) At(day, slot int) *AllocationState {
	return m.cells[day*m.slots+slot]
}

// Reset clears every cell, including forced ones
func (m *ShiftMatrix) Reset() {
	for _, c := range m.cells {
		c.Reset()
	}
}

// ResetUnforced prepares the matrix for a new decode pass
func (m *ShiftMatrix) ResetUnforced() {
	for _, c := range m.cells {
		c.ResetIfNotForced()
	}
}

func (m *ShiftMatrix) NumberOfSlots() int {
	return len(m.cells)
}

// NumberOfUnforcedSlots is the number of cells a chromosome has to decode
func (m *ShiftMatrix) NumberOfUnforcedSlots() int {
	count := 0
	for _, c := range m.cells {
		if !c.Forced {
			count++
		}
	}
	return count
}

// Allocations copies the chosen item of every cell, indexed [day][slot]
func (m *ShiftMatrix) Allocations() [][]*int {
	out := make([][]*int, m.days)
	for day := 0; day < m.days; day++ {
		out[day] = make([]*int, m.slots)
		for slot := 0; slot < m.slots; slot++ {
			if chosen := m.At(day, slot).ChosenItem; chosen != nil {
				item := *chosen
				out[day][slot] = &item
			}
		}
	}
	return out
}

func (m *ShiftMatrix) String() string {
	var sb strings.Builder
	for day := 0; day < m.days; day++ {
		for slot := 0; slot < m.slots; slot++ {
			c := m.At(day, slot)
			switch {
			case c.ChosenItem != nil:
				fmt.Fprintf(&sb, "%3d", *c.ChosenItem)
			case c.Forced:
				sb.WriteString("  X")
			default:
				sb.WriteString("  -")
			}
			if slot < m.slots-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
