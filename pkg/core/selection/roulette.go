package selection

// Weight is the numeric type a roulette wheel can spin over
type Weight interface {
	~float32 | ~float64
}

// Roulette picks an index with probability proportional to its weight, using
// x in [0, 1) as the spin. It returns false when every weight is zero.
//
// A zero-weight index is never returned, even when rounding leaves the
// running remainder at exactly zero on it. Spins at or above 1 fall through
// the scan and are clamped to the last positive weight.
func Roulette[W Weight](weights []W, x W) (int, bool) {
	var sum W
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return 0, false
	}

	r := x * sum
	for i, w := range weights {
		r -= w
		if r <= 0 && w > 0 {
			return i, true
		}
	}

	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, true
		}
	}
	return 0, false
}
