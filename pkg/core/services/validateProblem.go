package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/pkg/core/constraints"
	"github.com/jakechorley/shiftgen/pkg/core/fitness"
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// ProblemStats summarises what the solver will work on
type ProblemStats struct {
	Cells            int
	ForcedCells      int
	ChromosomeLength int
	Enforcers        []string
	Dimensions       []string
}

// ValidateProblem checks the problem and reports the size of the search it
// implies
func ValidateProblem(problem *model.Problem, logger *zap.Logger) (*ProblemStats, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem is required")
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}

	m := matrix.Build(problem)
	evaluator, err := fitness.NewEvaluator(problem, fitness.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness evaluator: %w", err)
	}

	stats := &ProblemStats{
		Cells:            m.NumberOfSlots(),
		ChromosomeLength: m.NumberOfUnforcedSlots(),
		Enforcers:        constraints.Names(constraints.Build(problem)),
	}
	stats.ForcedCells = stats.Cells - stats.ChromosomeLength
	for _, d := range evaluator.Dimensions() {
		stats.Dimensions = append(stats.Dimensions, d.Name())
	}

	logger.Debug("Problem validated",
		zap.Int("cells", stats.Cells),
		zap.Int("forced_cells", stats.ForcedCells),
		zap.Int("chromosome_length", stats.ChromosomeLength),
		zap.Strings("enforcers", stats.Enforcers))

	return stats, nil
}
