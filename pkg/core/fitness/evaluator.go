package fitness

import (
	"fmt"
	"math"

	"github.com/jakechorley/shiftgen/pkg/core/chromosome"
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// Aggregation is how the evaluator combines dimension scores
type Aggregation string

const (
	// Mean is the unweighted arithmetic mean of every dimension
	Mean Aggregation = "mean"
	// WeightedMean uses each dimension's weight
	WeightedMean Aggregation = "weighted"
	// PowerMean raises the mean to an exponent, sharpening differences
	// between good solutions
	PowerMean Aggregation = "power"
)

func (a Aggregation) IsValid() bool {
	return a == Mean || a == WeightedMean || a == PowerMean
}

// Options configures the evaluator. The zero value is the plain mean.
type Options struct {
	Aggregation Aggregation
	Exponent    float64
}

// Evaluator combines the fitness dimensions of a problem into one score in
// [0, 1]
type Evaluator struct {
	dimensions  []Dimension
	aggregation Aggregation
	exponent    float64
}

// NewEvaluator builds the five standard dimensions for a problem
func NewEvaluator(p *model.Problem, opts Options) (*Evaluator, error) {
	dimensions := []Dimension{
		NewCurrentAptitudeFulfilled(WeightCurrentAptitudeFulfilled),
		NewInitialAptitudeFulfilled(WeightInitialAptitudeFulfilled),
		NewBusySlotsAreGood(p.SlotValues, WeightBusySlotsAreGood),
		NewItemEffortsFairness(p.ItemStartupEfforts, p.ItemWeights, p.SlotWeights, p.Days, p.Slots, p.Items, WeightItemEffortsFairness),
		NewSlotMixFairness(p.Items, WeightSlotMixFairness),
	}
	return NewEvaluatorWithDimensions(dimensions, opts)
}

// NewEvaluatorWithDimensions combines an arbitrary set of dimensions
func NewEvaluatorWithDimensions(dimensions []Dimension, opts Options) (*Evaluator, error) {
	if len(dimensions) == 0 {
		return nil, fmt.Errorf("at least one fitness dimension is required")
	}

	aggregation := opts.Aggregation
	if aggregation == "" {
		aggregation = Mean
	}
	if !aggregation.IsValid() {
		return nil, fmt.Errorf("unknown fitness aggregation %q", opts.Aggregation)
	}

	exponent := opts.Exponent
	if aggregation == PowerMean && exponent == 0 {
		exponent = DefaultPowerExponent
	}
	if exponent < 0 {
		return nil, fmt.Errorf("fitness exponent must not be negative (got %g)", exponent)
	}

	if aggregation == WeightedMean {
		var total float64
		for _, d := range dimensions {
			if d.Weight() < 0 {
				return nil, fmt.Errorf("dimension %s has a negative weight", d.Name())
			}
			total += d.Weight()
		}
		if total == 0 {
			return nil, fmt.Errorf("dimension weights sum to zero")
		}
	}

	return &Evaluator{
		dimensions:  dimensions,
		aggregation: aggregation,
		exponent:    exponent,
	}, nil
}

func (e *Evaluator) Dimensions() []Dimension {
	return e.dimensions
}

func (e *Evaluator) Evaluate(m *matrix.ShiftMatrix) float64 {
	switch e.aggregation {
	case WeightedMean:
		var sum, total float64
		for _, d := range e.dimensions {
			sum += d.Weight() * d.Evaluate(m)
			total += d.Weight()
		}
		return sum / total
	case PowerMean:
		return math.Pow(e.mean(m), e.exponent)
	default:
		return e.mean(m)
	}
}

// Breakdown returns every dimension score by name
func (e *Evaluator) Breakdown(m *matrix.ShiftMatrix) map[string]float64 {
	scores := make(map[string]float64, len(e.dimensions))
	for _, d := range e.dimensions {
		scores[d.Name()] = d.Evaluate(m)
	}
	return scores
}

func (e *Evaluator) mean(m *matrix.ShiftMatrix) float64 {
	var sum float64
	for _, d := range e.dimensions {
		sum += d.Evaluate(m)
	}
	return sum / float64(len(e.dimensions))
}

// Function decodes a chromosome into m and scores the result
type Function func(genes []float64) float64

func NewFunction(m *matrix.ShiftMatrix, processor *chromosome.Processor, evaluator *Evaluator) Function {
	return func(genes []float64) float64 {
		processor.Decode(m, genes)
		return evaluator.Evaluate(m)
	}
}
