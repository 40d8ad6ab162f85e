package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
	"github.com/finn1817/schedule-app/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// writeScheduleTable prints one row per seat with unfilled seats highlighted
func writeScheduleTable(w io.Writer, rows []allocator.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No shifts scheduled.")
		return
	}

	const dayColWidth, timeColWidth = 10, 9

	fmt.Fprintf(w, "%s%-*s  %-*s  %-*s  %s%s\n",
		colorBold,
		dayColWidth, "Day",
		timeColWidth, "Start",
		timeColWidth, "End",
		"Assigned",
		colorReset)
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", dayColWidth),
		strings.Repeat("-", timeColWidth),
		strings.Repeat("-", timeColWidth),
		strings.Repeat("-", 20))

	var lastDay model.Weekday
	for _, row := range rows {
		day := string(row.Day)
		if row.Day == lastDay {
			day = ""
		}
		lastDay = row.Day

		assigned := row.Assigned
		if row.Unfilled {
			assigned = colorRed + assigned + colorReset
		}
		fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
			dayColWidth, day,
			timeColWidth, row.Start,
			timeColWidth, row.End,
			assigned)
	}
}

// writeHoursTable prints each worker's assigned hours
func writeHoursTable(w io.Writer, rows []allocator.HoursRow) {
	for _, row := range rows {
		tag := ""
		if row.WorkStudy {
			tag = " (work study)"
		}
		fmt.Fprintf(w, "  %-30s %6sh%s\n", row.Name, formatHours(row.Hours), tag)
	}
}

// writeGenerated prints a generated schedule followed by its diagnostics
func writeGenerated(w io.Writer, generated *services.GeneratedSchedule, dryRun bool) {
	result := generated.Result

	fmt.Fprintf(w, "\n🗓️  %s - Week of %s\n\n", generated.Workplace, generated.WeekOf.Format("Mon Jan 02 2006"))
	fmt.Fprintf(w, "Seed:    %d\n", generated.Seed)
	switch {
	case dryRun:
		fmt.Fprintf(w, "Mode:    🧪 DRY RUN (not saved)\n")
	case generated.Run != nil:
		fmt.Fprintf(w, "Run ID:  %s\n", generated.Run.ID)
		fmt.Fprintf(w, "Status:  ✅ saved to database\n")
	}
	fmt.Fprintln(w)

	if len(generated.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Worker Sheet Warnings (%d):\n", len(generated.Warnings))
		for _, warning := range generated.Warnings {
			fmt.Fprintf(w, "  • %s\n", warning.String())
		}
		fmt.Fprintln(w)
	}

	writeScheduleTable(w, allocator.Rows(result.Schedule))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "⏱️  Hours:")
	writeHoursTable(w, allocator.HoursSummary(generated.Workers, result.AssignedHours))
	fmt.Fprintln(w)

	writeResultIssues(w, result)
}

func writeResultIssues(w io.Writer, result *allocator.Result) {
	writeList(w, "⚠️  Work Study Issues", result.WorkStudyIssues)
	writeList(w, "ℹ️  Low Hours", result.LowHours)
	writeList(w, "ℹ️  Below Minimum Hours", result.MinHoursIssues)
	writeList(w, "ℹ️  Unassigned Workers", result.Unassigned)

	if len(result.UnfilledShifts) > 0 {
		fmt.Fprintf(w, "%s❌ Unfilled Shifts (%d):%s\n", colorYellow, len(result.UnfilledShifts), colorReset)
		for _, shift := range result.UnfilledShifts {
			line := fmt.Sprintf("  • %s %s-%s",
				shift.Day,
				availability.FormatTimeAMPM(shift.Start),
				availability.FormatTimeAMPM(shift.End))
			if alternatives := result.AlternativeSolutions[shift.Key()]; len(alternatives) > 0 {
				line += " could be covered by " + strings.Join(alternatives, ", ")
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}

	if len(result.ValidationErrors) > 0 {
		fmt.Fprintf(w, "❌ Validation Errors (%d):\n", len(result.ValidationErrors))
		for _, verr := range result.ValidationErrors {
			if verr.Day != "" {
				fmt.Fprintf(w, "  • %s %s-%s - %s: %s\n", verr.Day, verr.Start, verr.End, verr.Rule, verr.Description)
			} else {
				fmt.Fprintf(w, "  • %s: %s\n", verr.Rule, verr.Description)
			}
		}
		fmt.Fprintln(w)
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
	fmt.Fprintln(w)
}

// writeWorkers prints a roster with total availability and parsed windows
func writeWorkers(w io.Writer, workers []model.Worker, warnings []sheetsclient.ParseWarning) {
	fmt.Fprintf(w, "\nFound %d workers:\n\n", len(workers))
	for _, worker := range workers {
		tag := ""
		if worker.WorkStudy {
			tag = " [Work Study]"
		}
		fmt.Fprintf(w, "- %s (%s)%s - %sh available\n",
			worker.Name(),
			worker.Email,
			tag,
			formatHours(worker.Availability.TotalHours()))
		if formatted := availability.FormatAvailability(worker.Availability); formatted != "" {
			fmt.Fprintf(w, "    %s\n", formatted)
		}
	}

	if len(warnings) > 0 {
		fmt.Fprintf(w, "\n⚠️  Warnings (%d):\n", len(warnings))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  • %s\n", warning.String())
		}
	}
}

// writeScheduleSummaries prints stored runs newest first
func writeScheduleSummaries(w io.Writer, workplace string, summaries []services.ScheduleSummary) {
	if len(summaries) == 0 {
		fmt.Fprintf(w, "No schedules stored for %s.\n", workplace)
		return
	}

	fmt.Fprintf(w, "\n📚 %s schedules (%d):\n\n", workplace, len(summaries))
	for _, s := range summaries {
		published := "not published"
		if s.PublishedAt != nil {
			published = "published " + s.PublishedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "- Week of %s  run %s\n", s.WeekOf, s.RunID)
		fmt.Fprintf(w, "    created %s, seed %d, %s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.Seed, published)
		fmt.Fprintf(w, "    %d seats, %d unfilled, %sh assigned\n", s.Seats, s.Unfilled, formatHours(s.Hours))
	}
}

// writeEmailResult prints who was sent a schedule and who failed
func writeEmailResult(w io.Writer, result *services.EmailResult) {
	fmt.Fprintf(w, "\n✉️  %s\n\n", result.Subject)
	for _, to := range result.Sent {
		fmt.Fprintf(w, "  ✓ %s\n", to)
	}

	if len(result.Failed) > 0 {
		failed := make([]string, 0, len(result.Failed))
		for to := range result.Failed {
			failed = append(failed, to)
		}
		sort.Strings(failed)

		fmt.Fprintf(w, "\n⚠️  Failed to send %d emails:\n", len(failed))
		for _, to := range failed {
			fmt.Fprintf(w, "  ✗ %s: %v\n", to, result.Failed[to])
		}
	}
}
