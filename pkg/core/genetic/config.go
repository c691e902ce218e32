package genetic

import "fmt"

type Config struct {
	PopulationSize   int
	ChromosomeLength int
	EliteFraction    float64
	CrossoverRate    float64
	MutationRate     float64
}

// DefaultConfig keeps the best 5% of every generation, crosses over 90% of
// the offspring and swap-mutates 5% of them
func DefaultConfig(populationSize, chromosomeLength int) Config {
	return Config{
		PopulationSize:   populationSize,
		ChromosomeLength: chromosomeLength,
		EliteFraction:    0.05,
		CrossoverRate:    0.90,
		MutationRate:     0.05,
	}
}

func (c Config) Validate() error {
	if c.PopulationSize <= 1 {
		return fmt.Errorf("population size must be greater than 1 (got %d)", c.PopulationSize)
	}
	if c.ChromosomeLength < 0 {
		return fmt.Errorf("chromosome length must not be negative (got %d)", c.ChromosomeLength)
	}
	if c.EliteFraction < 0 || c.EliteFraction >= 1 {
		return fmt.Errorf("elite fraction must be in [0, 1) (got %f)", c.EliteFraction)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1] (got %f)", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1] (got %f)", c.MutationRate)
	}
	return nil
}

// EliteCount is the number of genomes copied unchanged into the next
// generation
func (c Config) EliteCount() int {
	if c.EliteFraction == 0 {
		return 0
	}
	return max(1, int(c.EliteFraction*float64(c.PopulationSize)))
}
