package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/cmd/cli/commands"
	"github.com/jakechorley/shiftgen/internal/config"
	"github.com/jakechorley/shiftgen/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{Out: os.Stdout}
	stop    context.CancelFunc
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftgen",
		Short: "Shiftgen - Allocate workers to shifts with a genetic algorithm",
		Long: `A CLI tool that searches for good allocations of items (workers) to daily slots,
honouring closures, unavailabilities, working-day limits and fairness.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stop != nil {
				stop()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.SolveCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the cancellable context
func initApp() error {
	var err error

	// Ctrl-C stops the search and keeps the best solution found so far
	app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logging.WithVerbose(verbose))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("population_size", app.Cfg.Solver.PopulationSize),
		zap.Duration("max_execution_time", app.Cfg.Solver.MaxExecutionTime),
		zap.Int("max_epochs", app.Cfg.Solver.MaxEpochs),
		zap.Int("max_epochs_without_improvement", app.Cfg.Solver.MaxEpochsWithoutImprovement))

	return nil
}
