package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finn1817/schedule-app/pkg/core/services"
)

// EmailScheduleCmd creates the emailSchedule command
func EmailScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emailSchedule <workplace> [recipients...]",
		Short: "Email the latest stored schedule (configured recipients if none given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			plain, _ := cmd.Flags().GetBool("plain")
			opts := services.EmailOptions{Recipients: args[1:], PlainText: plain}

			result, err := services.EmailSchedule(app.Ctx, database, gmail, app.Cfg, app.Logger, args[0], opts)
			if err != nil {
				return fmt.Errorf("email failed: %w", err)
			}

			writeEmailResult(os.Stdout, result)

			if len(result.Sent) == 0 {
				return fmt.Errorf("no emails were sent")
			}
			return nil
		},
	}

	cmd.Flags().Bool("plain", false, "Send a plain text email instead of HTML tables")

	return cmd
}
