package model

import (
	"fmt"
	"strings"
)

// Solution is the outcome of a search: for every day and slot, the item that
// covers it (nil when the slot stays empty)
type Solution struct {
	Allocations        [][]*int // [day][slot]
	Fitness            float64
	EvaluatedSolutions int
}

func (s *Solution) Days() int {
	return len(s.Allocations)
}

func (s *Solution) Slots() int {
	if len(s.Allocations) == 0 {
		return 0
	}
	return len(s.Allocations[0])
}

// ItemAt returns the item covering the slot on the given day
func (s *Solution) ItemAt(day, slot int) (int, bool) {
	item := s.Allocations[day][slot]
	if item == nil {
		return 0, false
	}
	return *item, true
}

// ItemAllocations returns, for every item and day, the slot the item covers
// that day (nil when the item rests). When an item covers several compatible
// slots on the same day the highest slot index wins.
func (s *Solution) ItemAllocations(items int) [][]*int {
	byItem := make([][]*int, items)
	for i := range byItem {
		byItem[i] = make([]*int, s.Days())
	}
	for day, slots := range s.Allocations {
		for slot, item := range slots {
			if item == nil || *item < 0 || *item >= items {
				continue
			}
			slot := slot
			byItem[*item][day] = &slot
		}
	}
	return byItem
}

func (s *Solution) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fitness: %.6f\n", s.Fitness)
	fmt.Fprintf(&sb, "Evaluated solutions: %d\n", s.EvaluatedSolutions)
	for _, slots := range s.Allocations {
		for slot, item := range slots {
			if item == nil {
				sb.WriteString("  -")
			} else {
				fmt.Fprintf(&sb, "%3d", *item)
			}
			if slot < len(slots)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
