package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/internal/config"
	"github.com/jakechorley/shiftgen/pkg/core/services"
	"github.com/jakechorley/shiftgen/pkg/core/solver"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <problem.yaml>",
		Short: "Search for the best allocation of a problem file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problemPath := args[0]

			settings, err := solverSettings(app.Cfg.Solver, cmd.Flags())
			if err != nil {
				return err
			}

			app.Logger.Debug("solve command",
				zap.String("problem", problemPath),
				zap.Int("population_size", settings.PopulationSize),
				zap.Duration("max_execution_time", settings.MaxExecutionTime))

			problem, err := config.LoadProblem(problemPath)
			if err != nil {
				return err
			}

			out := app.Out
			fmt.Fprintf(out, "\n🔍 Solving %s (%d days × %d slots, %d items)\n\n", problemPath, problem.Days, problem.Slots, problem.Items)

			result, err := services.SolveProblem(app.Ctx, problem, settings, app.Logger, func(imp solver.FitnessImprovement) {
				fmt.Fprintf(out, "  ↑ %.6f  epoch %-6d %s\n", imp.Fitness, imp.Epoch, imp.Elapsed.Round(time.Millisecond))
			})
			if result == nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(out, "\n⚠️  Search interrupted: %v\n", err)
			}

			color := fitnessColor(result.Solution.Fitness, colorGreen, colorYellow, colorRed)
			fmt.Fprintf(out, "\n✓ Search completed!\n\n")
			fmt.Fprintf(out, "Run ID:              %s\n", result.RunID)
			fmt.Fprintf(out, "Fitness:             %s%.6f%s\n", color, result.Solution.Fitness, colorReset)
			fmt.Fprintf(out, "Evaluated solutions: %d\n", result.Solution.EvaluatedSolutions)
			fmt.Fprintf(out, "Elapsed:             %s\n\n", result.Elapsed.Round(time.Millisecond))

			renderSolution(out, problem, result.Solution)
			fmt.Fprintln(out)
			renderItemLoad(out, result.Solution, problem.Items)
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().Int("population", 0, "Population size of every search")
	cmd.Flags().Duration("max-time", 0, "Stop after this long (e.g. 30s, 2m)")
	cmd.Flags().Int("max-epochs", 0, "Stop after this many generations")
	cmd.Flags().Int("stagnation", 0, "Restart a population after this many generations without improvement")
	cmd.Flags().Int("threads", 0, "Number of parallel searches (1 runs a single search)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible searches")
	cmd.Flags().String("aggregation", "", "How fitness dimensions combine: mean, weighted or power")

	return cmd
}

// solverSettings applies the flags the user set on top of the configured
// settings and validates the result
func solverSettings(base config.SolverConfig, flags *pflag.FlagSet) (config.SolverConfig, error) {
	s := base

	if flags.Changed("population") {
		s.PopulationSize, _ = flags.GetInt("population")
	}
	if flags.Changed("max-time") {
		s.MaxExecutionTime, _ = flags.GetDuration("max-time")
	}
	if flags.Changed("max-epochs") {
		s.MaxEpochs, _ = flags.GetInt("max-epochs")
	}
	if flags.Changed("stagnation") {
		s.MaxEpochsWithoutImprovement, _ = flags.GetInt("stagnation")
	}
	if flags.Changed("threads") {
		threads, _ := flags.GetInt("threads")
		s.Threads = &threads
	}
	if flags.Changed("seed") {
		s.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("aggregation") {
		s.Aggregation, _ = flags.GetString("aggregation")
	}

	if err := config.Validate(&config.Config{Solver: s}); err != nil {
		return config.SolverConfig{}, err
	}
	return s, nil
}
