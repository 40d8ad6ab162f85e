package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/services"
)

// ListWorkersCmd creates the listWorkers command
func ListWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listWorkers <workplace>",
		Short: "List a workplace's workers and their parsed availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wp, ok := app.Cfg.Workplace(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", services.ErrWorkplaceNotFound, args[0])
			}

			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			workers, warnings, err := sheets.ListWorkers(app.Cfg.WorkerSheetID, wp.WorkersTab)
			if err != nil {
				return fmt.Errorf("failed to list workers: %w", err)
			}

			app.Logger.Info("Workers fetched successfully", zap.String("workplace", wp.Name), zap.Int("count", len(workers)))

			writeWorkers(os.Stdout, workers, warnings)
			return nil
		},
	}
}
