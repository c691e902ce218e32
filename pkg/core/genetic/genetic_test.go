package genetic

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumFitness prefers genomes whose genes are close to 1
func sumFitness(genes []float64) float64 {
	var sum float64
	for _, g := range genes {
		sum += g
	}
	return sum / float64(len(genes))
}

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig(100, 10).Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"population of one", Config{PopulationSize: 1}},
		{"negative length", Config{PopulationSize: 10, ChromosomeLength: -1}},
		{"elite fraction of one", Config{PopulationSize: 10, EliteFraction: 1}},
		{"crossover above one", Config{PopulationSize: 10, CrossoverRate: 1.5}},
		{"negative mutation", Config{PopulationSize: 10, MutationRate: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestConfig_EliteCount(t *testing.T) {
	assert.Equal(t, 5, DefaultConfig(100, 1).EliteCount())
	assert.Equal(t, 1, DefaultConfig(10, 1).EliteCount())
	assert.Equal(t, 0, Config{PopulationSize: 10}.EliteCount())
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(DefaultConfig(10, 5), nil, newRng(1))
	assert.Error(t, err)

	_, err = New(DefaultConfig(10, 5), sumFitness, nil)
	assert.Error(t, err)

	_, err = New(DefaultConfig(1, 5), sumFitness, newRng(1))
	assert.Error(t, err)
}

func TestNew_RandomPopulationInUnitInterval(t *testing.T) {
	e, err := New(DefaultConfig(20, 8), sumFitness, newRng(2))
	require.NoError(t, err)

	assert.Equal(t, 20, e.Evaluations())
	assert.Equal(t, 0, e.Generation())
	for _, g := range e.current {
		require.Len(t, g.Genes, 8)
		for _, v := range g.Genes {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestEvolver_StepKeepsElite(t *testing.T) {
	e, err := New(DefaultConfig(40, 6), sumFitness, newRng(3))
	require.NoError(t, err)

	for n := 0; n < 30; n++ {
		before := e.MaxFitness()
		e.Step()
		assert.GreaterOrEqual(t, e.MaxFitness(), before)
		assert.GreaterOrEqual(t, e.MaxFitness(), e.AverageFitness())
	}
	assert.Equal(t, 30, e.Generation())
	assert.Equal(t, 40+30*(40-2), e.Evaluations())
}

func TestEvolver_ImprovesFitness(t *testing.T) {
	e, err := New(DefaultConfig(60, 10), sumFitness, newRng(4))
	require.NoError(t, err)
	initial := e.AverageFitness()

	for n := 0; n < 100; n++ {
		e.Step()
	}

	assert.Greater(t, e.AverageFitness(), initial)
}

func TestEvolver_Run(t *testing.T) {
	e, err := New(DefaultConfig(10, 4), sumFitness, newRng(5))
	require.NoError(t, err)

	var seen []int
	err = e.Run(context.Background(), func(g Generation) bool {
		seen = append(seen, g.Index)
		return g.Index == 3
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestEvolver_RunStopsOnCancelledContext(t *testing.T) {
	e, err := New(DefaultConfig(10, 4), sumFitness, newRng(6))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = e.Run(ctx, func(Generation) bool { return false })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrossoverSinglePoint(t *testing.T) {
	p1 := []float64{0, 0, 0, 0}
	p2 := []float64{1, 1, 1, 1}
	c1 := make([]float64, 4)
	c2 := make([]float64, 4)

	crossoverSinglePoint(p1, p2, c1, c2, newRng(7))

	cut := 0
	for cut < 4 && c1[cut] == 0 {
		cut++
	}
	assert.GreaterOrEqual(t, cut, 1)
	assert.LessOrEqual(t, cut, 3)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 1-c1[i], c2[i])
		if i < cut {
			assert.Equal(t, 0.0, c1[i])
		} else {
			assert.Equal(t, 1.0, c1[i])
		}
	}
}

func TestMutateSwap(t *testing.T) {
	genes := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	mutateSwap(genes, newRng(8))

	assert.ElementsMatch(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, genes)
	assert.NotEqual(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, genes)
}
