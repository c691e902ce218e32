package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/pkg/core/chromosome"
	"github.com/jakechorley/shiftgen/pkg/core/constraints"
	"github.com/jakechorley/shiftgen/pkg/core/enumerator"
	"github.com/jakechorley/shiftgen/pkg/core/fitness"
	"github.com/jakechorley/shiftgen/pkg/core/genetic"
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

var ErrNilProblem = errors.New("problem is required")

// TerminationFunc is asked after every generation whether the World should
// stop
type TerminationFunc func(epoch, epochsWithoutImprovement int, maxFitness, avgFitness float64) bool

// World is the lifetime of one genetic-algorithm population. The matrix,
// enumerator, enforcers and evaluator are built once and reused for every
// chromosome the population produces.
type World struct {
	populationSize int
	rng            *rand.Rand
	logger         *zap.Logger

	matrix     *matrix.ShiftMatrix
	enforcers  []constraints.Enforcer
	evaluator  *fitness.Evaluator
	fitnessFn  fitness.Function
	geneLength int

	epochs                   int
	epochsWithoutImprovement int
	overallBest              float64
}

func NewWorld(problem *model.Problem, populationSize int, fitnessOpts fitness.Options, rng *rand.Rand, logger *zap.Logger) (*World, error) {
	if problem == nil {
		return nil, ErrNilProblem
	}
	if populationSize <= 1 {
		return nil, fmt.Errorf("population size must be greater than 1 (got %d)", populationSize)
	}
	if rng == nil {
		return nil, fmt.Errorf("random number generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := matrix.Build(problem)
	enforcers := constraints.Build(problem)
	processor := chromosome.NewProcessor(
		enumerator.NewIncreasingRowsRandomColumns(problem.Days, problem.Slots, rng),
		enforcers,
	)

	evaluator, err := fitness.NewEvaluator(problem, fitnessOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness evaluator: %w", err)
	}

	return &World{
		populationSize: populationSize,
		rng:            rng,
		logger:         logger,
		matrix:         m,
		enforcers:      enforcers,
		evaluator:      evaluator,
		fitnessFn:      fitness.NewFunction(m, processor, evaluator),
		geneLength:     m.NumberOfUnforcedSlots(),
		overallBest:    -1,
	}, nil
}

// ChromosomeLength is the number of genes, one per unforced cell
func (w *World) ChromosomeLength() int {
	return w.geneLength
}

func (w *World) Epochs() int {
	return w.epochs
}

// Evolve runs the population until terminate returns true, then decodes the
// best chromosome once more and returns it as a Solution.
//
// When ctx is cancelled the best solution found so far is returned together
// with the context error.
func (w *World) Evolve(ctx context.Context, terminate TerminationFunc) (*model.Solution, error) {
	w.logger.Debug("Creating population",
		zap.Int("population_size", w.populationSize),
		zap.Int("chromosome_length", w.geneLength),
		zap.Strings("enforcers", constraints.Names(w.enforcers)))

	evolver, err := genetic.New(genetic.DefaultConfig(w.populationSize, w.geneLength), genetic.FitnessFunc(w.fitnessFn), w.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}

	runErr := evolver.Run(ctx, func(g genetic.Generation) bool {
		w.epochs++
		if g.MaxFitness > w.overallBest {
			w.overallBest = g.MaxFitness
			w.epochsWithoutImprovement = 0
		} else {
			w.epochsWithoutImprovement++
		}
		return terminate(w.epochs, w.epochsWithoutImprovement, g.MaxFitness, g.AverageFitness)
	})

	// Leave the matrix holding the winning allocation
	best := evolver.Best()
	fitnessValue := w.fitnessFn(best.Genes)

	w.logger.Debug("Population evolved",
		zap.Int("epochs", w.epochs),
		zap.Float64("fitness", fitnessValue))

	solution := &model.Solution{
		Allocations:        w.matrix.Allocations(),
		Fitness:            fitnessValue,
		EvaluatedSolutions: w.epochs * w.populationSize,
	}
	return solution, runErr
}

// Breakdown scores the current matrix on every fitness dimension
func (w *World) Breakdown() map[string]float64 {
	return w.evaluator.Breakdown(w.matrix)
}
