package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shiftgen/pkg/core/fitness"
	"github.com/jakechorley/shiftgen/pkg/core/solver"
)

// EnvPrefix is prepended to every environment variable that overrides a
// solver setting, e.g. SHIFTGEN_MAX_EPOCHS
const EnvPrefix = "SHIFTGEN_"

// SolverConfig holds the search settings. Every field can be overridden from
// the environment.
type SolverConfig struct {
	PopulationSize              int           `yaml:"populationSize" env:"POPULATION_SIZE" validate:"gt=1"`
	MaxExecutionTime            time.Duration `yaml:"maxExecutionTime" env:"MAX_EXECUTION_TIME" validate:"gte=0"`
	MaxEpochs                   int           `yaml:"maxEpochs" env:"MAX_EPOCHS" validate:"gte=0"`
	MaxEpochsWithoutImprovement int           `yaml:"maxEpochsWithoutImprovement" env:"MAX_EPOCHS_WITHOUT_IMPROVEMENT" validate:"gte=0"`
	// Threads is the number of parallel searches; unset uses every CPU
	Threads     *int    `yaml:"threads,omitempty" env:"THREADS" validate:"omitempty,min=1"`
	Seed        uint64  `yaml:"seed,omitempty" env:"SEED"`
	Aggregation string  `yaml:"aggregation,omitempty" env:"AGGREGATION" validate:"omitempty,oneof=mean weighted power"`
	Exponent    float64 `yaml:"exponent,omitempty" env:"EXPONENT" validate:"gte=0"`
}

// Config represents the application configuration
type Config struct {
	Solver SolverConfig `yaml:"solver"`
}

var validate *validator.Validate

var errConfigNotFound = errors.New("config file not found in current directory or home directory")

func init() {
	validate = validator.New()
}

// DefaultSolverConfig searches for up to 30 seconds, restarting populations
// that stop improving for 100 epochs
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		PopulationSize:              100,
		MaxExecutionTime:            30 * time.Second,
		MaxEpochsWithoutImprovement: 100,
	}
}

// Load loads the configuration from shiftgen_config.yaml, falling back to
// defaults when no file exists. Environment overrides are always applied.
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix.
// For example, env="test" will look for "shiftgen_config.test.yaml"
func LoadWithEnv(envName string) (*Config, error) {
	configPath, err := findConfigFile(envName)
	if errors.Is(err, errConfigNotFound) {
		cfg := &Config{Solver: DefaultSolverConfig()}
		if err := ApplyEnvOverrides(cfg, nil); err != nil {
			return nil, err
		}
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Settings missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Solver: DefaultSolverConfig()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ApplyEnvOverrides(&cfg, nil); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnvOverrides overwrites solver settings with SHIFTGEN_* variables.
// A nil environ reads the process environment.
func ApplyEnvOverrides(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg.Solver, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return fmt.Errorf("invalid environment override: %w", aggErr.Errors[0])
		}
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// Validate validates the configuration struct and checks that the search
// can terminate
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Solver.EnvironmentConfig().Validate(); err != nil {
		return fmt.Errorf("invalid solver settings: %w", err)
	}

	return nil
}

// EnvironmentConfig converts the settings into the solver's termination and
// population parameters
func (s SolverConfig) EnvironmentConfig() *solver.EnvironmentConfig {
	return &solver.EnvironmentConfig{
		PopulationSize:                     s.PopulationSize,
		MaxExecutionTimeMilliseconds:       s.MaxExecutionTime.Milliseconds(),
		MaxEpochs:                          s.MaxEpochs,
		MaxEpochsWithoutFitnessImprovement: s.MaxEpochsWithoutImprovement,
	}
}

// Options converts the settings into solver options
func (s SolverConfig) Options() []solver.Option {
	opts := []solver.Option{
		solver.WithSeed(s.Seed),
		solver.WithFitness(fitness.Options{
			Aggregation: fitness.Aggregation(s.Aggregation),
			Exponent:    s.Exponent,
		}),
	}
	if s.Threads != nil {
		opts = append(opts, solver.WithThreads(*s.Threads))
	}
	return opts
}

// findConfigFile searches for shiftgen_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "shiftgen_config.test.yaml")
func findConfigFile(envName string) (string, error) {
	configFileName := "shiftgen_config.yaml"
	if envName != "" {
		configFileName = "shiftgen_config." + envName + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", errConfigNotFound
}
