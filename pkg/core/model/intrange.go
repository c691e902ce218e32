package model

import "fmt"

// IntRange is an inclusive range of indexes (days, slots or items)
type IntRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// NewIntRange creates a range from..to, both ends included
func NewIntRange(from, to int) (IntRange, error) {
	if from > to {
		return IntRange{}, fmt.Errorf("invalid range: from (%d) is greater than to (%d)", from, to)
	}
	return IntRange{From: from, To: to}, nil
}

// Single returns a range covering exactly one index
func Single(i int) IntRange {
	return IntRange{From: i, To: i}
}

// Len returns the number of indexes covered by the range
func (r IntRange) Len() int {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

func (r IntRange) Contains(i int) bool {
	return i >= r.From && i <= r.To
}

func (r IntRange) String() string {
	if r.From == r.To {
		return fmt.Sprintf("%d", r.From)
	}
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// within checks the range is well formed and fits in [0, limit)
func (r IntRange) within(name string, limit int) error {
	if r.From > r.To {
		return fmt.Errorf("invalid %s range %d-%d: from is greater than to", name, r.From, r.To)
	}
	if r.From < 0 || r.To >= limit {
		return fmt.Errorf("%s range %s out of bounds [0, %d)", name, r, limit)
	}
	return nil
}
