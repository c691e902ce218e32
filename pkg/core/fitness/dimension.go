package fitness

import (
	"math"

	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// Dimension scores one quality of a decoded allocation in [0, 1].
//
// A dimension may cache values derived from the matrix it was last handed
// (its normaliser). The cache is keyed on the matrix pointer: a World reuses
// one matrix with different content for every chromosome.
type Dimension interface {
	Name() string
	Weight() float64
	Evaluate(m *matrix.ShiftMatrix) float64
}

// StdDev is the sample standard deviation (n-1 denominator); it is 0 for
// fewer than two values
func StdDev[N ~int | ~float32 | ~float64](values []N) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	var squares float64
	for _, v := range values {
		d := float64(v) - mean
		squares += d * d
	}
	return math.Sqrt(squares / float64(len(values)-1))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func maxOf(values []float32) float32 {
	var m float32
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
