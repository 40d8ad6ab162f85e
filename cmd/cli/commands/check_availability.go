package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finn1817/schedule-app/pkg/core/model"
	"github.com/finn1817/schedule-app/pkg/core/services"
)

// CheckAvailabilityCmd creates the checkAvailability command
func CheckAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkAvailability <workplace> <day> <start> <end>",
		Short: "List workers free for a shift, e.g. checkAvailability Library Mon 09:00 12:00",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, ok := model.ParseWeekday(args[1])
			if !ok {
				return fmt.Errorf("invalid day: %s", args[1])
			}

			roster, err := app.SheetsClient()
			if err != nil {
				return err
			}

			workers, err := services.FindAvailableWorkers(app.Ctx, roster, app.Cfg, app.Logger, args[0], day, args[2], args[3])
			if err != nil {
				return err
			}

			if len(workers) == 0 {
				fmt.Printf("\nNo workers are available %s %s-%s.\n", day, args[2], args[3])
				return nil
			}

			fmt.Printf("\n%d workers available %s %s-%s:\n\n", len(workers), day, args[2], args[3])
			for _, w := range workers {
				tag := ""
				if w.WorkStudy {
					tag = " [Work Study]"
				}
				fmt.Printf("- %s (%s)%s\n", w.Name(), w.Email, tag)
			}

			return nil
		},
	}
}
