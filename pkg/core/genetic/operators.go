package genetic

import (
	"math/rand/v2"

	"github.com/jakechorley/shiftgen/pkg/core/selection"
)

// selectParent picks a genome with probability proportional to its fitness,
// falling back to a uniform pick when every fitness is zero
func selectParent(population []*Genome, weights []float64, rng *rand.Rand) *Genome {
	for i, g := range population {
		weights[i] = g.Fitness
	}
	if i, ok := selection.Roulette(weights, rng.Float64()); ok {
		return population[i]
	}
	return population[rng.IntN(len(population))]
}

// crossoverSinglePoint writes into child1 and child2 the two offspring of
// cutting both parents at the same random point
func crossoverSinglePoint(p1, p2, child1, child2 []float64, rng *rand.Rand) {
	n := len(p1)
	if n < 2 {
		copy(child1, p1)
		copy(child2, p2)
		return
	}
	cut := 1 + rng.IntN(n-1)
	copy(child1[:cut], p1[:cut])
	copy(child1[cut:], p2[cut:])
	copy(child2[:cut], p2[:cut])
	copy(child2[cut:], p1[cut:])
}

// mutateSwap exchanges two random genes
func mutateSwap(genes []float64, rng *rand.Rand) {
	n := len(genes)
	if n < 2 {
		return
	}
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	genes[i], genes[j] = genes[j], genes[i]
}
