package fitness

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// AptitudeFulfilled rewards allocations that pick items with high aptitude.
//
// The score is the sum, over unforced covered cells, of the chosen item's
// aptitude, divided by the sum over unforced cells of the best initial
// aptitude. CurrentAptitudeFulfilled reads the aptitude left by the
// enforcers; InitialAptitudeFulfilled reads the configured one.
type AptitudeFulfilled struct {
	name       string
	weight     float64
	useInitial bool

	lastMatrix *matrix.ShiftMatrix
	normaliser float64
}

func NewCurrentAptitudeFulfilled(weight float64) *AptitudeFulfilled {
	return &AptitudeFulfilled{name: "CurrentAptitudeFulfilled", weight: weight}
}

func NewInitialAptitudeFulfilled(weight float64) *AptitudeFulfilled {
	return &AptitudeFulfilled{name: "InitialAptitudeFulfilled", weight: weight, useInitial: true}
}

func (d *AptitudeFulfilled) Name() string {
	return d.name
}

func (d *AptitudeFulfilled) Weight() float64 {
	return d.weight
}

func (d *AptitudeFulfilled) Evaluate(m *matrix.ShiftMatrix) float64 {
	d.setNormaliser(m)
	if d.normaliser == 0 {
		return 0
	}

	var value float64
	for day := 0; day < m.Days(); day++ {
		for slot := 0; slot < m.Slots(); slot++ {
			cell := m.At(day, slot)
			if cell.Forced || cell.ChosenItem == nil {
				continue
			}
			if d.useInitial {
				value += float64(cell.InitialAptitudes[*cell.ChosenItem])
			} else {
				value += float64(cell.CurrentAptitudes[*cell.ChosenItem])
			}
		}
	}

	// consecutive slot multipliers above 1 can push current aptitudes past
	// the initial maximum
	return clamp01(value / d.normaliser)
}

func (d *AptitudeFulfilled) setNormaliser(m *matrix.ShiftMatrix) {
	if d.lastMatrix == m {
		return
	}
	d.lastMatrix = m
	d.normaliser = 0
	for day := 0; day < m.Days(); day++ {
		for slot := 0; slot < m.Slots(); slot++ {
			if cell := m.At(day, slot); !cell.Forced {
				d.normaliser += float64(maxOf(cell.InitialAptitudes))
			}
		}
	}
}
