package fitness

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// BusySlotsAreGood rewards covering as many unforced cells as possible,
// each weighted by its slot value (1 when slot values are not configured)
type BusySlotsAreGood struct {
	weight     float64
	slotValues []float32
}

func NewBusySlotsAreGood(slotValues []float32, weight float64) *BusySlotsAreGood {
	return &BusySlotsAreGood{
		weight:     weight,
		slotValues: slotValues,
	}
}

func (d *BusySlotsAreGood) Name() string {
	return "BusySlotsAreGood"
}

func (d *BusySlotsAreGood) Weight() float64 {
	return d.weight
}

func (d *BusySlotsAreGood) Evaluate(m *matrix.ShiftMatrix) float64 {
	var value, maxValue float64
	for day := 0; day < m.Days(); day++ {
		for slot := 0; slot < m.Slots(); slot++ {
			cell := m.At(day, slot)
			if cell.Forced {
				continue
			}
			v := d.slotValue(slot)
			maxValue += v
			if cell.ChosenItem != nil {
				value += v
			}
		}
	}
	if maxValue == 0 {
		return 0
	}
	return clamp01(value / maxValue)
}

func (d *BusySlotsAreGood) slotValue(slot int) float64 {
	if d.slotValues == nil {
		return 1
	}
	return float64(d.slotValues[slot])
}
