package allocator

import (
	"sort"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Row is one line of an exported schedule
type Row struct {
	Day      model.Weekday `json:"day"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Assigned string        `json:"assigned"`
	Unfilled bool          `json:"unfilled"`
}

// Rows flattens a schedule into display rows, ordered by day then start time.
// Times are rendered in 12 hour form.
func Rows(schedule model.Schedule) []Row {
	rows := make([]Row, 0)
	for _, day := range model.Days {
		shifts := append([]model.Shift(nil), schedule[day]...)
		sort.SliceStable(shifts, func(i, j int) bool {
			return availability.TimeToHour(shifts[i].Start) < availability.TimeToHour(shifts[j].Start)
		})

		for _, shift := range shifts {
			rows = append(rows, Row{
				Day:      day,
				Start:    availability.FormatTimeAMPM(shift.Start),
				End:      availability.FormatTimeAMPM(shift.End),
				Assigned: strings.Join(shift.Assigned, ", "),
				Unfilled: shift.IsUnfilled(),
			})
		}
	}
	return rows
}

// HoursRow is one worker's line in an hours summary
type HoursRow struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	WorkStudy bool    `json:"work_study"`
	Hours     float64 `json:"hours"`
}

// HoursSummary lists every worker with their assigned hours, most hours first
func HoursSummary(workers []model.Worker, assigned model.AssignedHours) []HoursRow {
	rows := make([]HoursRow, 0, len(workers))
	for _, w := range workers {
		rows = append(rows, HoursRow{
			Name:      w.Name(),
			Email:     w.Email,
			WorkStudy: w.WorkStudy,
			Hours:     assigned[w.Email],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}
