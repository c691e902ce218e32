package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/internal/config"
	"github.com/jakechorley/shiftgen/pkg/core/model"
	"github.com/jakechorley/shiftgen/pkg/core/solver"
)

// SolveResult represents the outcome of one solver run
type SolveResult struct {
	RunID        string
	Solution     *model.Solution
	Improvements []solver.FitnessImprovement
	Elapsed      time.Duration
}

// SolveProblem searches for an allocation of the problem with the given
// solver settings. onImprovement, when not nil, is called for every new best
// fitness as the search progresses.
func SolveProblem(ctx context.Context, problem *model.Problem, cfg config.SolverConfig, logger *zap.Logger, onImprovement solver.FitnessImprovementFunc) (*SolveResult, error) {
	if problem == nil {
		return nil, solver.ErrNilProblem
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Info("Solving problem",
		zap.Int("days", problem.Days),
		zap.Int("slots", problem.Slots),
		zap.Int("items", problem.Items),
		zap.Int("population_size", cfg.PopulationSize),
		zap.Duration("max_execution_time", cfg.MaxExecutionTime),
		zap.Int("max_epochs", cfg.MaxEpochs),
		zap.Int("max_epochs_without_improvement", cfg.MaxEpochsWithoutImprovement))

	var (
		mu           sync.Mutex
		improvements []solver.FitnessImprovement
	)
	record := func(imp solver.FitnessImprovement) {
		mu.Lock()
		improvements = append(improvements, imp)
		mu.Unlock()
		if onImprovement != nil {
			onImprovement(imp)
		}
	}

	opts := append(cfg.Options(),
		solver.WithLogger(logger),
		solver.WithFitnessImprovement(record))

	env, err := solver.NewSolvingEnvironment(problem, cfg.EnvironmentConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create solving environment: %w", err)
	}

	start := time.Now()
	solution, err := env.Solve(ctx)
	elapsed := time.Since(start)
	if err != nil && solution == nil {
		return nil, fmt.Errorf("failed to solve problem: %w", err)
	}
	if err != nil {
		logger.Warn("Search interrupted, returning best solution so far", zap.Error(err))
	}

	logger.Info("Problem solved",
		zap.Float64("fitness", solution.Fitness),
		zap.Int("evaluated_solutions", solution.EvaluatedSolutions),
		zap.Int("improvements", len(improvements)),
		zap.Duration("elapsed", elapsed))

	return &SolveResult{
		RunID:        runID,
		Solution:     solution,
		Improvements: improvements,
		Elapsed:      elapsed,
	}, err
}
