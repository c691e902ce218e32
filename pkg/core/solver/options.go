package solver

import (
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/pkg/core/fitness"
)

// FitnessImprovement is reported every time a search finds a better
// solution than any seen before
type FitnessImprovement struct {
	Fitness float64
	Epoch   int
	Elapsed time.Duration
}

// FitnessImprovementFunc receives improvement notifications. In a
// multi-threaded search it is called with a lock held, one call at a time.
type FitnessImprovementFunc func(FitnessImprovement)

// Options holds optional settings of the solving environments
type Options struct {
	Logger        *zap.Logger
	Seed          uint64
	Threads       *int
	Fitness       fitness.Options
	OnImprovement FitnessImprovementFunc
}

type Option func(*Options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithSeed makes the search reproducible for a given thread count. Zero
// picks a random seed.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithThreads sets the number of parallel searches. One selects the
// single-threaded environment.
func WithThreads(threads int) Option {
	return func(o *Options) { o.Threads = &threads }
}

func WithFitness(opts fitness.Options) Option {
	return func(o *Options) { o.Fitness = opts }
}

func WithFitnessImprovement(fn FitnessImprovementFunc) Option {
	return func(o *Options) { o.OnImprovement = fn }
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
