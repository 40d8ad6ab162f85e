package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finn1817/schedule-app/pkg/core/services"
)

const defaultScheduleCount = 5

// ViewSchedulesCmd creates the viewSchedules command
func ViewSchedulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedules <workplace> [count]",
		Short: "Show a workplace's most recent stored schedules",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := defaultScheduleCount
			if len(args) == 2 {
				var err error
				count, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
			}

			database, err := app.Database()
			if err != nil {
				return err
			}

			summaries, err := services.ViewSchedules(app.Ctx, database, app.Cfg, app.Logger, args[0], count)
			if err != nil {
				return err
			}

			writeScheduleSummaries(os.Stdout, args[0], summaries)
			return nil
		},
	}
}
