package fitness

import (
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// ItemEffortsFairness rewards spreading the workload evenly across items.
//
// Each item accumulates slotWeight*itemWeight for every cell it covers, on
// top of its startup effort. The score is 1 - stddev(efforts)/normaliser,
// where the normaliser is the stddev of {0, highest possible effort}.
type ItemEffortsFairness struct {
	weight             float64
	itemStartupEfforts []float32
	itemWeights        []float32
	slotWeights        []float32
	normaliser         float64

	efforts []float64
}

// NewItemEffortsFairness builds the dimension. Missing startup efforts
// default to 0; missing item and slot weights default to 1.
func NewItemEffortsFairness(itemStartupEfforts, itemWeights, slotWeights []float32, days, slots, items int, weight float64) *ItemEffortsFairness {
	if itemStartupEfforts == nil {
		itemStartupEfforts = make([]float32, items)
	}
	if itemWeights == nil {
		itemWeights = make([]float32, items)
		for i := range itemWeights {
			itemWeights[i] = 1
		}
	}
	if slotWeights == nil {
		slotWeights = make([]float32, slots)
		for i := range slotWeights {
			slotWeights[i] = 1
		}
	}

	d := &ItemEffortsFairness{
		weight:             weight,
		itemStartupEfforts: itemStartupEfforts,
		itemWeights:        itemWeights,
		slotWeights:        slotWeights,
		efforts:            make([]float64, items),
	}

	maxSlotWeight := float64(maxOf(slotWeights))
	var maxEffort float64
	for i := 0; i < items; i++ {
		effort := float64(itemStartupEfforts[i]) + float64(itemWeights[i])*maxSlotWeight*float64(days)
		if i == 0 || effort > maxEffort {
			maxEffort = effort
		}
	}
	d.normaliser = StdDev([]float64{0, maxEffort})

	return d
}

func (d *ItemEffortsFairness) Name() string {
	return "ItemEffortsFairness"
}

func (d *ItemEffortsFairness) Weight() float64 {
	return d.weight
}

func (d *ItemEffortsFairness) Evaluate(m *matrix.ShiftMatrix) float64 {
	for i := range d.efforts {
		d.efforts[i] = float64(d.itemStartupEfforts[i])
	}

	for day := 0; day < m.Days(); day++ {
		for slot := 0; slot < m.Slots(); slot++ {
			if chosen := m.At(day, slot).ChosenItem; chosen != nil {
				d.efforts[*chosen] += float64(d.slotWeights[slot]) * float64(d.itemWeights[*chosen])
			}
		}
	}

	deviation := StdDev(d.efforts)
	if d.normaliser == 0 {
		if deviation == 0 {
			return 1
		}
		return 0
	}
	return clamp01(1 - deviation/d.normaliser)
}
