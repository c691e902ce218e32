package selection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoulette_ZeroSum(t *testing.T) {
	_, ok := Roulette([]float32{0, 0, 0}, 0.3)
	assert.False(t, ok)

	_, ok = Roulette([]float32{}, 0.3)
	assert.False(t, ok)
}

func TestRoulette_Boundaries(t *testing.T) {
	weights := []float32{1, 1, 0.1, 1, 1}

	tests := []struct {
		x        float32
		expected int
	}{
		{0.4878, 1},
		{0.4879, 2},
		{0.5121, 2},
		{0.5122, 3},
	}

	for _, tt := range tests {
		got, ok := Roulette(weights, tt.x)
		assert.True(t, ok)
		assert.Equal(t, tt.expected, got, "x=%v", tt.x)
	}
}

func TestRoulette_SpinAboveOneClampsToLast(t *testing.T) {
	got, ok := Roulette([]float32{1, 1, 0.1, 1, 1}, 1.0001)
	assert.True(t, ok)
	assert.Equal(t, 4, got)

	got, ok = Roulette([]float32{1, 1, 0}, 1.5)
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestRoulette_ZeroFirstWeightWithZeroSpin(t *testing.T) {
	got, ok := Roulette([]float32{0, 1, 1}, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestRoulette_SingleNonZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 1000; n++ {
		weights := make([]float32, 6)
		target := rng.IntN(len(weights))
		weights[target] = rng.Float32()*10 + 0.001

		got, ok := Roulette(weights, rng.Float32())
		assert.True(t, ok)
		assert.Equal(t, target, got)
	}
}

func TestRoulette_NeverPicksZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for n := 0; n < 1000; n++ {
		weights := make([]float32, 8)
		for i := range weights {
			if rng.IntN(2) == 0 {
				weights[i] = rng.Float32() * 5
			}
		}
		got, ok := Roulette(weights, rng.Float32())
		if !ok {
			continue
		}
		assert.Greater(t, weights[got], float32(0))
	}
}

func TestRoulette_Float64(t *testing.T) {
	got, ok := Roulette([]float64{0.2, 0.3, 0.5}, 0.6)
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}
