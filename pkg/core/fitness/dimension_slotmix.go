package fitness

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// SlotMixFairness rewards rotating items through each slot. For every slot
// it takes the stddev of how many days each item covered it; the score is
// 1 - sum(stddev)/(slots*items).
type SlotMixFairness struct {
	weight      float64
	occurrences []int
}

func NewSlotMixFairness(items int, weight float64) *SlotMixFairness {
	return &SlotMixFairness{
		weight:      weight,
		occurrences: make([]int, items),
	}
}

func (d *SlotMixFairness) Name() string {
	return "SlotMixFairness"
}

func (d *SlotMixFairness) Weight() float64 {
	return d.weight
}

func (d *SlotMixFairness) Evaluate(m *matrix.ShiftMatrix) float64 {
	var value float64
	for slot := 0; slot < m.Slots(); slot++ {
		for i := range d.occurrences {
			d.occurrences[i] = 0
		}
		for day := 0; day < m.Days(); day++ {
			if chosen := m.At(day, slot).ChosenItem; chosen != nil {
				d.occurrences[*chosen]++
			}
		}
		value += StdDev(d.occurrences)
	}
	return clamp01(1 - value/float64(m.Slots()*m.Items()))
}
