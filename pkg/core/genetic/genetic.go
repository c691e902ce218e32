package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
)

// FitnessFunc scores a chromosome; higher is better
type FitnessFunc func(genes []float64) float64

// Genome is one chromosome of real-valued genes in [0, 1) and its fitness
type Genome struct {
	Genes   []float64
	Fitness float64
}

// Generation is the summary passed to Run's callback after each step
type Generation struct {
	Index          int
	MaxFitness     float64
	AverageFitness float64
	Evaluations    int
}

// Evolver runs a generational genetic algorithm over real-valued genomes.
// It is not safe for concurrent use: the fitness function usually decodes
// into a shared matrix.
type Evolver struct {
	cfg     Config
	rng     *rand.Rand
	fitness FitnessFunc

	current     []*Genome
	next        []*Genome
	weights     []float64
	generation  int
	evaluations int
}

// New creates an evolver with a random initial population, already
// evaluated
func New(cfg Config, fitness FitnessFunc, rng *rand.Rand) (*Evolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fitness == nil {
		return nil, fmt.Errorf("fitness function is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random number generator is required")
	}

	e := &Evolver{
		cfg:     cfg,
		rng:     rng,
		fitness: fitness,
		current: makePopulation(cfg.PopulationSize, cfg.ChromosomeLength),
		next:    makePopulation(cfg.PopulationSize, cfg.ChromosomeLength),
		weights: make([]float64, cfg.PopulationSize),
	}

	for _, g := range e.current {
		for i := range g.Genes {
			g.Genes[i] = rng.Float64()
		}
		e.evaluate(g)
	}
	e.sortCurrent()

	return e, nil
}

func makePopulation(size, length int) []*Genome {
	backing := make([]float64, size*length)
	population := make([]*Genome, size)
	for i := range population {
		population[i] = &Genome{Genes: backing[i*length : (i+1)*length : (i+1)*length]}
	}
	return population
}

func (e *Evolver) evaluate(g *Genome) {
	g.Fitness = e.fitness(g.Genes)
	e.evaluations++
}

// sortCurrent orders the population best first
func (e *Evolver) sortCurrent() {
	sort.SliceStable(e.current, func(i, j int) bool {
		return e.current[i].Fitness > e.current[j].Fitness
	})
}

// Step produces and evaluates the next generation
func (e *Evolver) Step() {
	size := e.cfg.PopulationSize
	write := 0

	for ; write < e.cfg.EliteCount(); write++ {
		copy(e.next[write].Genes, e.current[write].Genes)
		e.next[write].Fitness = e.current[write].Fitness
	}

	for write < size {
		p1 := selectParent(e.current, e.weights, e.rng)
		p2 := selectParent(e.current, e.weights, e.rng)

		child1 := e.next[write]
		hasSecond := write+1 < size
		var child2 *Genome
		if hasSecond {
			child2 = e.next[write+1]
		} else {
			child2 = &Genome{Genes: make([]float64, e.cfg.ChromosomeLength)}
		}

		if e.rng.Float64() < e.cfg.CrossoverRate {
			crossoverSinglePoint(p1.Genes, p2.Genes, child1.Genes, child2.Genes, e.rng)
		} else {
			copy(child1.Genes, p1.Genes)
			copy(child2.Genes, p2.Genes)
		}

		if e.rng.Float64() < e.cfg.MutationRate {
			mutateSwap(child1.Genes, e.rng)
		}
		e.evaluate(child1)
		write++

		if hasSecond {
			if e.rng.Float64() < e.cfg.MutationRate {
				mutateSwap(child2.Genes, e.rng)
			}
			e.evaluate(child2)
			write++
		}
	}

	e.current, e.next = e.next, e.current
	e.sortCurrent()
	e.generation++
}

// Run steps the population until onGeneration returns true or ctx is done
func (e *Evolver) Run(ctx context.Context, onGeneration func(Generation) bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
		if onGeneration(e.Summary()) {
			return nil
		}
	}
}

// Summary describes the current generation
func (e *Evolver) Summary() Generation {
	return Generation{
		Index:          e.generation,
		MaxFitness:     e.MaxFitness(),
		AverageFitness: e.AverageFitness(),
		Evaluations:    e.evaluations,
	}
}

// Best returns the fittest genome of the current generation. The genome is
// owned by the evolver and changes on the next Step.
func (e *Evolver) Best() *Genome {
	return e.current[0]
}

func (e *Evolver) MaxFitness() float64 {
	return e.current[0].Fitness
}

func (e *Evolver) AverageFitness() float64 {
	var sum float64
	for _, g := range e.current {
		sum += g.Fitness
	}
	return sum / float64(len(e.current))
}

func (e *Evolver) Generation() int {
	return e.generation
}

// Evaluations counts every fitness call, including the initial population
func (e *Evolver) Evaluations() int {
	return e.evaluations
}
