package fitness

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shiftgen/pkg/core/chromosome"
	"github.com/jakechorley/shiftgen/pkg/core/constraints"
	"github.com/jakechorley/shiftgen/pkg/core/enumerator"
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

func intPtr(i int) *int { return &i }

// assign marks a cell as processed and covered by item
func assign(m *matrix.ShiftMatrix, day, slot, item int) {
	cell := m.At(day, slot)
	cell.Processed = true
	cell.ChosenItem = intPtr(item)
}

// fixedDimension always returns the same score
type fixedDimension struct {
	name   string
	weight float64
	score  float64
}

func (f *fixedDimension) Name() string                         { return f.name }
func (f *fixedDimension) Weight() float64                      { return f.weight }
func (f *fixedDimension) Evaluate(m *matrix.ShiftMatrix) float64 { return f.score }

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{}))
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, math.Sqrt(2), StdDev([]float64{0, 2}), 1e-9)
	assert.InDelta(t, 1.0, StdDev([]int{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, StdDev([]int{4, 4, 4}))
}

func TestAptitudeFulfilled_Evaluate(t *testing.T) {
	m := matrix.New(2, 2, 2, 1)
	m.At(0, 0).InitialAptitudes[1] = 3
	m.At(0, 0).CurrentAptitudes[1] = 3
	m.At(1, 1).Force(intPtr(0))
	// normaliser: 3 + 1 + 1 = 5 (forced cell excluded)
	assign(m, 0, 0, 1)
	assign(m, 0, 1, 0)
	m.At(0, 1).CurrentAptitudes[0] = 0.5

	current := NewCurrentAptitudeFulfilled(1)
	initial := NewInitialAptitudeFulfilled(1)

	assert.InDelta(t, 3.5/5, current.Evaluate(m), 1e-6)
	assert.InDelta(t, 4.0/5, initial.Evaluate(m), 1e-6)
	assert.Equal(t, "CurrentAptitudeFulfilled", current.Name())
	assert.Equal(t, "InitialAptitudeFulfilled", initial.Name())
}

func TestAptitudeFulfilled_NormaliserCachedPerMatrix(t *testing.T) {
	m1 := matrix.New(1, 2, 2, 1)
	m2 := matrix.New(1, 2, 2, 2)
	assign(m1, 0, 0, 0)
	assign(m2, 0, 0, 0)

	d := NewInitialAptitudeFulfilled(1)

	assert.InDelta(t, 0.5, d.Evaluate(m1), 1e-9)
	// changing initial aptitudes of the same matrix keeps the cached normaliser
	m1.At(0, 1).InitialAptitudes[0] = 10
	assert.InDelta(t, 0.5, d.Evaluate(m1), 1e-9)
	// a different matrix recomputes it
	assert.InDelta(t, 0.5, d.Evaluate(m2), 1e-9)
}

func TestAptitudeFulfilled_ClampsToOne(t *testing.T) {
	m := matrix.New(1, 2, 2, 1)
	assign(m, 0, 0, 0)
	assign(m, 0, 1, 1)
	m.At(0, 0).CurrentAptitudes[0] = 5

	assert.Equal(t, 1.0, NewCurrentAptitudeFulfilled(1).Evaluate(m))
}

func TestAptitudeFulfilled_AllForced(t *testing.T) {
	m := matrix.New(1, 2, 2, 1)
	m.At(0, 0).Force(nil)
	m.At(0, 1).Force(nil)

	assert.Equal(t, 0.0, NewCurrentAptitudeFulfilled(1).Evaluate(m))
}

func TestBusySlotsAreGood_Unweighted(t *testing.T) {
	m := matrix.New(2, 2, 2, 1)
	m.At(1, 1).Force(nil)
	assign(m, 0, 0, 0)
	assign(m, 1, 0, 1)

	assert.InDelta(t, 2.0/3, NewBusySlotsAreGood(nil, 1).Evaluate(m), 1e-9)
}

func TestBusySlotsAreGood_SlotValues(t *testing.T) {
	m := matrix.New(1, 3, 2, 1)
	assign(m, 0, 2, 0)

	d := NewBusySlotsAreGood([]float32{1, 1, 2}, 1)
	assert.InDelta(t, 0.5, d.Evaluate(m), 1e-9)
}

func TestItemEffortsFairness_PerfectlyBalanced(t *testing.T) {
	m := matrix.New(2, 2, 2, 1)
	assign(m, 0, 0, 0)
	assign(m, 0, 1, 1)
	assign(m, 1, 0, 1)
	assign(m, 1, 1, 0)

	d := NewItemEffortsFairness(nil, nil, nil, 2, 2, 2, 1)
	assert.InDelta(t, 1.0, d.Evaluate(m), 1e-9)
}

func TestItemEffortsFairness_Unbalanced(t *testing.T) {
	m := matrix.New(2, 2, 2, 1)
	assign(m, 0, 0, 0)
	assign(m, 1, 0, 0)

	d := NewItemEffortsFairness(nil, nil, nil, 2, 2, 2, 1)
	// efforts {2, 0}, normaliser stddev{0, 2}: same spread, score 0
	assert.InDelta(t, 0.0, d.Evaluate(m), 1e-9)
}

func TestItemEffortsFairness_StartupEffortsAndWeights(t *testing.T) {
	m := matrix.New(1, 2, 2, 1)
	assign(m, 0, 0, 1)

	// item 0 starts at 2, item 1 gains slotWeight(2) * itemWeight(1)
	d := NewItemEffortsFairness([]float32{2, 0}, []float32{1, 1}, []float32{2, 1}, 1, 2, 2, 1)
	assert.InDelta(t, 1.0, d.Evaluate(m), 1e-6)
}

func TestSlotMixFairness(t *testing.T) {
	m := matrix.New(2, 2, 2, 1)
	assign(m, 0, 0, 0)
	assign(m, 1, 0, 1)
	assign(m, 0, 1, 1)
	assign(m, 1, 1, 0)

	d := NewSlotMixFairness(2, 1)
	assert.InDelta(t, 1.0, d.Evaluate(m), 1e-9)

	assign(m, 1, 0, 0)
	// slot 0 counts {2, 0}: stddev sqrt(2); slot 1 counts {1, 1}: 0
	assert.InDelta(t, 1-math.Sqrt(2)/4, d.Evaluate(m), 1e-9)
}

func TestEvaluator_Aggregations(t *testing.T) {
	dims := []Dimension{
		&fixedDimension{name: "a", weight: 3, score: 1},
		&fixedDimension{name: "b", weight: 1, score: 0.5},
	}
	m := matrix.New(1, 2, 2, 1)

	mean, err := NewEvaluatorWithDimensions(dims, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, mean.Evaluate(m), 1e-9)

	weighted, err := NewEvaluatorWithDimensions(dims, Options{Aggregation: WeightedMean})
	require.NoError(t, err)
	assert.InDelta(t, 3.5/4, weighted.Evaluate(m), 1e-9)

	power, err := NewEvaluatorWithDimensions(dims, Options{Aggregation: PowerMean})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(0.75, 3), power.Evaluate(m), 1e-9)

	assert.Equal(t, map[string]float64{"a": 1, "b": 0.5}, mean.Breakdown(m))
}

func TestEvaluator_InvalidOptions(t *testing.T) {
	dims := []Dimension{&fixedDimension{name: "a", weight: 0, score: 1}}

	_, err := NewEvaluatorWithDimensions(nil, Options{})
	assert.Error(t, err)

	_, err = NewEvaluatorWithDimensions(dims, Options{Aggregation: "median"})
	assert.Error(t, err)

	_, err = NewEvaluatorWithDimensions(dims, Options{Aggregation: WeightedMean})
	assert.Error(t, err)

	_, err = NewEvaluatorWithDimensions(dims, Options{Aggregation: PowerMean, Exponent: -1})
	assert.Error(t, err)
}

func TestFunction_ScoresStayInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	p, err := model.NewProblem(7, 4, 5)
	require.NoError(t, err)
	require.NoError(t, p.SetConsecutiveSlotAptitude(1.5, model.Single(0), model.IntRange{From: 0, To: 3}))
	require.NoError(t, p.SetSlotValue(4, model.Single(1)))
	require.NoError(t, p.SetItemStartupEffort(3, 2))
	require.NoError(t, p.CloseSlots(model.Single(0), model.Single(3)))

	m := matrix.Build(p)
	processor := chromosome.NewProcessor(enumerator.NewIncreasingRowsRandomColumns(p.Days, p.Slots, rng), constraints.Build(p))
	evaluator, err := NewEvaluator(p, Options{})
	require.NoError(t, err)
	assert.Len(t, evaluator.Dimensions(), 5)

	fn := NewFunction(m, processor, evaluator)
	genes := make([]float64, m.NumberOfUnforcedSlots())
	for n := 0; n < 100; n++ {
		for i := range genes {
			genes[i] = rng.Float64()
		}
		score := fn(genes)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
