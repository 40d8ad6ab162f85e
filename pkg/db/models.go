package db

import (
	"time"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

// ScheduleRun represents one stored allocation run for a workplace
type ScheduleRun struct {
	ID        string
	Workplace string
	// WeekOf is the first day of the scheduled week, "2006-01-02"
	WeekOf      string
	Seed        int64
	CreatedAt   time.Time
	PublishedAt *time.Time
	// Roster is the worker list the run was generated from
	Roster []model.Worker
}

// ShiftAssignment represents one seat of a stored schedule. An unfilled seat has
// no WorkerEmail and WorkerName set to model.Unfilled.
type ShiftAssignment struct {
	ID          string
	RunID       string
	Day         model.Weekday
	Start       string
	End         string
	WorkerEmail string
	WorkerName  string
	WorkStudy   bool
}

func (a ShiftAssignment) IsUnfilled() bool {
	return a.WorkerEmail == ""
}
