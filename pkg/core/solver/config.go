package solver

import (
	"errors"
	"fmt"
)

var ErrUnboundedSearch = errors.New("a max execution time or a max number of epochs is required: epochs without improvement alone only restarts the population")

// EnvironmentConfig holds the search parameters shared by every solving
// environment. Zero disables a termination threshold.
type EnvironmentConfig struct {
	PopulationSize                     int
	MaxExecutionTimeMilliseconds       int64
	MaxEpochs                          int
	MaxEpochsWithoutFitnessImprovement int
}

// DefaultEnvironmentConfig returns a population of 100 and no termination
// threshold; callers must enable at least one
func DefaultEnvironmentConfig() *EnvironmentConfig {
	return &EnvironmentConfig{
		PopulationSize: 100,
	}
}

func (c *EnvironmentConfig) Validate() error {
	if c.PopulationSize <= 1 {
		return fmt.Errorf("population size must be greater than 1 (got %d)", c.PopulationSize)
	}
	if c.MaxExecutionTimeMilliseconds < 0 || c.MaxEpochs < 0 || c.MaxEpochsWithoutFitnessImprovement < 0 {
		return fmt.Errorf("termination thresholds must not be negative")
	}
	if c.MaxExecutionTimeMilliseconds == 0 && c.MaxEpochs == 0 {
		if c.MaxEpochsWithoutFitnessImprovement == 0 {
			return ErrNoTerminationCriteria
		}
		return ErrUnboundedSearch
	}
	return nil
}
