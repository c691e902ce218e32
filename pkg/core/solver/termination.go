package solver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNoTerminationCriteria = errors.New("at least one termination criterion must be enabled")

// TerminationManager decides when a search stops. Each threshold is
// disabled when zero; the search stops as soon as any enabled threshold is
// reached.
type TerminationManager struct {
	maxExecutionTimeMs          int64
	maxEpochs                   int
	maxEpochsWithoutImprovement int
	logger                      *zap.Logger
}

func NewTerminationManager(maxExecutionTimeMs int64, maxEpochs, maxEpochsWithoutImprovement int, logger *zap.Logger) (*TerminationManager, error) {
	if maxExecutionTimeMs < 0 {
		return nil, fmt.Errorf("max execution time must not be negative (got %d)", maxExecutionTimeMs)
	}
	if maxEpochs < 0 {
		return nil, fmt.Errorf("max epochs must not be negative (got %d)", maxEpochs)
	}
	if maxEpochsWithoutImprovement < 0 {
		return nil, fmt.Errorf("max epochs without improvement must not be negative (got %d)", maxEpochsWithoutImprovement)
	}
	if maxExecutionTimeMs == 0 && maxEpochs == 0 && maxEpochsWithoutImprovement == 0 {
		return nil, ErrNoTerminationCriteria
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TerminationManager{
		maxExecutionTimeMs:          maxExecutionTimeMs,
		maxEpochs:                   maxEpochs,
		maxEpochsWithoutImprovement: maxEpochsWithoutImprovement,
		logger:                      logger,
	}, nil
}

// Terminated reports whether any enabled criterion has been reached
func (t *TerminationManager) Terminated(elapsedMs int64, epoch, epochsWithoutImprovement int) bool {
	if t.maxExecutionTimeMs > 0 && elapsedMs >= t.maxExecutionTimeMs {
		t.logger.Debug("Computation terminated: max execution time reached",
			zap.Int64("elapsed_ms", elapsedMs),
			zap.Int64("max_ms", t.maxExecutionTimeMs))
		return true
	}

	if t.maxEpochs > 0 && epoch >= t.maxEpochs {
		t.logger.Debug("Computation terminated: max epochs reached",
			zap.Int("epoch", epoch),
			zap.Int("max_epochs", t.maxEpochs))
		return true
	}

	if t.maxEpochsWithoutImprovement > 0 && epochsWithoutImprovement >= t.maxEpochsWithoutImprovement {
		t.logger.Debug("Computation terminated: fitness stopped improving",
			zap.Int("epochs_without_improvement", epochsWithoutImprovement),
			zap.Int("max_epochs_without_improvement", t.maxEpochsWithoutImprovement))
		return true
	}

	return false
}
