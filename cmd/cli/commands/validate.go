package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shiftgen/internal/config"
	"github.com/jakechorley/shiftgen/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <problem.yaml>",
		Short: "Check a problem file and show the size of its search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("validate command", zap.String("problem", args[0]))

			problem, err := config.LoadProblem(args[0])
			if err != nil {
				return err
			}

			stats, err := services.ValidateProblem(problem, app.Logger)
			if err != nil {
				return err
			}

			out := app.Out
			fmt.Fprintf(out, "\n✓ Problem is valid\n\n")
			fmt.Fprintf(out, "Days:              %d (from %s)\n", problem.Days, problem.FirstDay.Format("2006-01-02"))
			fmt.Fprintf(out, "Slots:             %d\n", problem.Slots)
			fmt.Fprintf(out, "Items:             %d\n", problem.Items)
			fmt.Fprintf(out, "Cells:             %d (%d closed)\n", stats.Cells, stats.ForcedCells)
			fmt.Fprintf(out, "Chromosome length: %d\n", stats.ChromosomeLength)
			fmt.Fprintf(out, "Constraints:       %s\n", strings.Join(stats.Enforcers, ", "))
			fmt.Fprintf(out, "Fitness:           %s\n\n", strings.Join(stats.Dimensions, ", "))

			return nil
		},
	}
}
