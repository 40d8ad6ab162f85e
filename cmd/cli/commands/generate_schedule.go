package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule [workplace]",
		Short: "Generate this week's schedule (all workplaces if none given)",
		Long: `Read each workplace's workers and operating hours from the worker sheet,
allocate shifts and store the run. Pass --seed to reproduce a previous run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("generateSchedule command",
				zap.Strings("args", args),
				zap.Int64("seed", seed),
				zap.Bool("dry_run", dryRun))

			roster, err := app.SheetsClient()
			if err != nil {
				return err
			}

			var store services.ScheduleWriter
			if !dryRun {
				database, err := app.Database()
				if err != nil {
					return err
				}
				store = database
			}

			opts := services.GenerateOptions{Seed: seed, DryRun: dryRun}

			var generated []*services.GeneratedSchedule
			if len(args) == 1 {
				one, err := services.GenerateSchedule(app.Ctx, store, roster, app.Cfg, app.Logger, args[0], opts)
				if err != nil {
					return fmt.Errorf("generation failed: %w", err)
				}
				generated = append(generated, one)
			} else {
				generated, err = services.GenerateAllSchedules(app.Ctx, store, roster, app.Cfg, app.Logger, opts)
				if err != nil {
					return fmt.Errorf("generation failed: %w", err)
				}
			}

			for _, g := range generated {
				writeGenerated(os.Stdout, g, dryRun)
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the schedule.")
			} else {
				fmt.Println("✅ Schedules have been saved. Run publishSchedule to write them to the sheet.")
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 picks one)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}
