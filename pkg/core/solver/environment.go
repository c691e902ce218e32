package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

var (
	ErrNilConfig      = errors.New("environment configuration is required")
	ErrInvalidThreads = errors.New("number of threads must be at least 1")
	ErrSingleThread   = errors.New("a multi-threaded environment needs more than one thread: use the simple environment")
)

// SolvingEnvironment searches for the best solution of a problem
type SolvingEnvironment interface {
	Solve(ctx context.Context) (*model.Solution, error)
}

// NewSolvingEnvironment picks the environment for the requested thread
// count: unset runs one search per CPU, 1 runs a single search, n runs n
// searches in parallel
func NewSolvingEnvironment(problem *model.Problem, cfg *EnvironmentConfig, opts ...Option) (SolvingEnvironment, error) {
	o := applyOptions(opts)

	if o.Threads == nil {
		return NewMultiThreadedSolvingEnvironment(problem, cfg, 0, opts...)
	}
	if *o.Threads < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidThreads, *o.Threads)
	}
	if *o.Threads == 1 {
		return NewSimpleSolvingEnvironment(problem, cfg, opts...)
	}
	return NewMultiThreadedSolvingEnvironment(problem, cfg, *o.Threads, opts...)
}

func checkInputs(problem *model.Problem, cfg *EnvironmentConfig) error {
	if problem == nil {
		return ErrNilProblem
	}
	if cfg == nil {
		return ErrNilConfig
	}
	if err := problem.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	return nil
}

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return rand.Uint64()
	}
	return seed
}
