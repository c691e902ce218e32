package solver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// MultiThreadedSolvingEnvironment runs independent simple environments in
// parallel, each with its own random stream, and keeps the best result.
// Threads share nothing but the best fitness seen so far, which is only used
// for logging and improvement notifications.
type MultiThreadedSolvingEnvironment struct {
	problem *model.Problem
	cfg     *EnvironmentConfig
	opts    Options
	threads int

	mu          sync.Mutex
	bestFitness float64
}

// NewMultiThreadedSolvingEnvironment creates the environment. threads == 0
// uses one thread per CPU; threads == 1 is rejected.
func NewMultiThreadedSolvingEnvironment(problem *model.Problem, cfg *EnvironmentConfig, threads int, opts ...Option) (*MultiThreadedSolvingEnvironment, error) {
	if err := checkInputs(problem, cfg); err != nil {
		return nil, err
	}
	if threads < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidThreads, threads)
	}
	if threads == 1 {
		return nil, ErrSingleThread
	}
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	return &MultiThreadedSolvingEnvironment{
		problem: problem,
		cfg:     cfg,
		opts:    applyOptions(opts),
		threads: threads,
	}, nil
}

func (e *MultiThreadedSolvingEnvironment) Threads() int {
	return e.threads
}

func (e *MultiThreadedSolvingEnvironment) Solve(ctx context.Context) (*model.Solution, error) {
	logger := e.opts.Logger
	seed := resolveSeed(e.opts.Seed)

	logger.Info("Starting parallel search",
		zap.Int("threads", e.threads),
		zap.Uint64("seed", seed))

	e.bestFitness = -1
	results := make([]*model.Solution, e.threads)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.threads; i++ {
		threadOpts := e.opts
		threadOpts.Logger = logger.With(zap.Int("thread", i))

		env := &SimpleSolvingEnvironment{
			problem: e.problem,
			cfg:     e.cfg,
			opts:    threadOpts,
			rng:     newRand(seed, uint64(i)),
			notify:  e.onThreadImprovement(i),
		}

		g.Go(func() error {
			solution, err := env.Solve(gctx)
			results[i] = solution
			return err
		})
	}
	err := g.Wait()

	var best *model.Solution
	evaluated := 0
	for _, s := range results {
		if s == nil {
			continue
		}
		evaluated += s.EvaluatedSolutions
		if best == nil || s.Fitness > best.Fitness {
			best = s
		}
	}
	if best == nil {
		return nil, err
	}

	logger.Info("Parallel search completed",
		zap.Float64("fitness", best.Fitness),
		zap.Int("evaluated_solutions", evaluated))

	return &model.Solution{
		Allocations:        best.Allocations,
		Fitness:            best.Fitness,
		EvaluatedSolutions: evaluated,
	}, err
}

func (e *MultiThreadedSolvingEnvironment) onThreadImprovement(thread int) FitnessImprovementFunc {
	return func(imp FitnessImprovement) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if imp.Fitness <= e.bestFitness {
			return
		}
		e.bestFitness = imp.Fitness
		e.opts.Logger.Info("New best fitness",
			zap.Float64("fitness", imp.Fitness),
			zap.Int("thread", thread),
			zap.Int("epoch", imp.Epoch),
			zap.Duration("elapsed", imp.Elapsed))
		if e.opts.OnImprovement != nil {
			e.opts.OnImprovement(imp)
		}
	}
}
