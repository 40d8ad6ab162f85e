package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finn1817/schedule-app/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <workplace>",
		Short: "Publish the latest stored schedule to the schedule sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			published, err := services.PublishSchedule(app.Ctx, database, sheets, app.Cfg, app.Logger, args[0])
			if err != nil {
				return fmt.Errorf("publish failed: %w", err)
			}

			fmt.Printf("\n✅ Published %d shifts to tab %q\n", len(published.Rows), published.TabTitle())
			return nil
		},
	}
}
