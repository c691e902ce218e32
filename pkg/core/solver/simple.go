package solver

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// SimpleSolvingEnvironment runs one search on the calling goroutine. Each
// World evolves until it stagnates or the search runs out of time or
// epochs; a fresh World is then started and the best solution across all of
// them is kept.
type SimpleSolvingEnvironment struct {
	problem *model.Problem
	cfg     *EnvironmentConfig
	opts    Options
	rng     *rand.Rand

	// notify receives every local improvement; defaults to opts.OnImprovement
	notify FitnessImprovementFunc
}

func NewSimpleSolvingEnvironment(problem *model.Problem, cfg *EnvironmentConfig, opts ...Option) (*SimpleSolvingEnvironment, error) {
	if err := checkInputs(problem, cfg); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	return &SimpleSolvingEnvironment{
		problem: problem,
		cfg:     cfg,
		opts:    o,
		rng:     newRand(resolveSeed(o.Seed), 0),
		notify:  o.OnImprovement,
	}, nil
}

func (e *SimpleSolvingEnvironment) Solve(ctx context.Context) (*model.Solution, error) {
	logger := e.opts.Logger

	tm, err := NewTerminationManager(
		e.cfg.MaxExecutionTimeMilliseconds,
		e.cfg.MaxEpochs,
		e.cfg.MaxEpochsWithoutFitnessImprovement,
		logger,
	)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	elapsedMs := func() int64 { return time.Since(start).Milliseconds() }

	var (
		best        *model.Solution
		bestFitness = -1.0
		totalEpochs int
		evaluated   int
		worlds      int
		solveErr    error
	)

	for {
		world, err := NewWorld(e.problem, e.cfg.PopulationSize, e.opts.Fitness, e.rng, logger)
		if err != nil {
			return nil, err
		}
		worlds++

		solution, err := world.Evolve(ctx, func(epoch, epochsWithoutImprovement int, maxFitness, avgFitness float64) bool {
			totalEpochs++
			if maxFitness > bestFitness {
				bestFitness = maxFitness
				logger.Debug("Fitness improved",
					zap.Float64("fitness", maxFitness),
					zap.Float64("average_fitness", avgFitness),
					zap.Int("epoch", totalEpochs),
					zap.Int("world", worlds))
				if e.notify != nil {
					e.notify(FitnessImprovement{
						Fitness: maxFitness,
						Epoch:   totalEpochs,
						Elapsed: time.Since(start),
					})
				}
			}
			return tm.Terminated(elapsedMs(), totalEpochs, epochsWithoutImprovement)
		})
		if solution != nil {
			evaluated += solution.EvaluatedSolutions
			if best == nil || solution.Fitness > best.Fitness {
				best = solution
			}
		}
		if err != nil {
			solveErr = err
			break
		}

		if tm.Terminated(elapsedMs(), totalEpochs, 0) {
			break
		}
		logger.Debug("Restarting population", zap.Int("world", worlds), zap.Int("total_epochs", totalEpochs))
	}

	if best == nil {
		return nil, solveErr
	}

	logger.Info("Search completed",
		zap.Float64("fitness", best.Fitness),
		zap.Int("worlds", worlds),
		zap.Int("epochs", totalEpochs),
		zap.Int("evaluated_solutions", evaluated),
		zap.Duration("elapsed", time.Since(start)))

	return &model.Solution{
		Allocations:        best.Allocations,
		Fitness:            best.Fitness,
		EvaluatedSolutions: evaluated,
	}, solveErr
}
