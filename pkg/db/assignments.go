package db

import (
	"sort"

	"github.com/google/uuid"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// AssignmentsFromSchedule converts each seat of schedule into a record for runID.
// Days are emitted in canonical order and shifts keep their schedule order.
func AssignmentsFromSchedule(runID string, schedule model.Schedule, roster []model.Worker) []ShiftAssignment {
	workStudy := make(map[string]bool, len(roster))
	for _, w := range roster {
		workStudy[w.Email] = w.WorkStudy
	}

	assignments := make([]ShiftAssignment, 0)
	for _, day := range model.Days {
		for _, shift := range schedule[day] {
			a := ShiftAssignment{
				ID:         uuid.New().String(),
				RunID:      runID,
				Day:        day,
				Start:      shift.Start,
				End:        shift.End,
				WorkerName: model.Unfilled,
			}
			if !shift.IsUnfilled() {
				a.WorkerEmail = shift.RawAssigned[0]
				a.WorkStudy = shift.IsWorkStudy || workStudy[a.WorkerEmail]
				if len(shift.Assigned) > 0 {
					a.WorkerName = shift.Assigned[0]
				}
			}
			assignments = append(assignments, a)
		}
	}
	return assignments
}

// ScheduleFromAssignments rebuilds a schedule, one shift per assignment,
// with each day's shifts ordered by start time
func ScheduleFromAssignments(assignments []ShiftAssignment) model.Schedule {
	schedule := model.Schedule{}
	for _, a := range assignments {
		shift := model.Shift{
			Day:         a.Day,
			Start:       a.Start,
			End:         a.End,
			Assigned:    []string{a.WorkerName},
			RawAssigned: []string{},
			Available:   []string{},
			IsWorkStudy: a.WorkStudy,
		}
		if !a.IsUnfilled() {
			shift.RawAssigned = []string{a.WorkerEmail}
		}
		schedule[a.Day] = append(schedule[a.Day], shift)
	}

	for day := range schedule {
		shifts := schedule[day]
		sort.SliceStable(shifts, func(i, j int) bool {
			return availability.TimeToHour(shifts[i].Start) < availability.TimeToHour(shifts[j].Start)
		})
	}
	return schedule
}

// AssignedHours totals shift lengths per worker email. Unfilled seats are ignored.
func AssignedHours(assignments []ShiftAssignment) model.AssignedHours {
	hours := model.AssignedHours{}
	for _, a := range assignments {
		if a.IsUnfilled() {
			continue
		}
		hours[a.WorkerEmail] += availability.TimeToHour(a.End) - availability.TimeToHour(a.Start)
	}
	return hours
}
