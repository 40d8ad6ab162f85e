package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Params overrides the allocation defaults. Nil fields keep the default.
type Params struct {
	MaxHoursPerWorker  *float64 `json:"max_hours_per_worker" binding:"omitempty,gt=0"`
	MaxWorkersPerShift *int     `json:"max_workers_per_shift" binding:"omitempty,min=1"`
	MinHoursPerWorker  *float64 `json:"min_hours_per_worker" binding:"omitempty,min=0"`
}

func (p Params) config() allocator.Config {
	cfg := allocator.DefaultConfig()
	if p.MaxHoursPerWorker != nil {
		cfg.MaxHoursPerWorker = *p.MaxHoursPerWorker
	}
	if p.MaxWorkersPerShift != nil {
		cfg.MaxWorkersPerShift = *p.MaxWorkersPerShift
	}
	if p.MinHoursPerWorker != nil {
		cfg.MinHoursPerWorker = *p.MinHoursPerWorker
	}
	return cfg
}

// WorkerInput is a roster entry. Availability may be given as text, as
// intervals, or both; text intervals are appended to the structured ones.
type WorkerInput struct {
	FirstName        string             `json:"first_name" binding:"required"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email" binding:"required,email"`
	WorkStudy        bool               `json:"work_study"`
	AvailabilityText string             `json:"availability_text"`
	Availability     model.Availability `json:"availability"`
}

type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

type ParseResponse struct {
	Availability model.Availability `json:"availability"`
	Formatted    string             `json:"formatted"`
	TotalHours   float64            `json:"total_hours"`
	Unrecognized []string           `json:"unrecognized"`
}

type ScheduleRequest struct {
	Params
	Workers []WorkerInput                    `json:"workers" binding:"omitempty,dive"`
	Hours   map[string][]model.ClockInterval `json:"hours"`
	// Seed makes the run reproducible; zero picks one at random
	Seed int64 `json:"seed"`
}

type ScheduleResponse struct {
	Seed     int64                `json:"seed"`
	Result   *allocator.Result    `json:"result"`
	Rows     []allocator.Row      `json:"rows"`
	Hours    []allocator.HoursRow `json:"hours"`
	Warnings []string             `json:"warnings"`
}

type ValidateRequest struct {
	Params
	Workers         []WorkerInput  `json:"workers" binding:"omitempty,dive"`
	Schedule        model.Schedule `json:"schedule" binding:"required"`
	WorkStudyIssues []string       `json:"ws_issues"`
}

// AddShiftRequest adds a manual block to a previously generated schedule
type AddShiftRequest struct {
	Params
	Workers       []WorkerInput       `json:"workers" binding:"omitempty,dive"`
	Schedule      model.Schedule      `json:"schedule"`
	AssignedHours model.AssignedHours `json:"assigned_hours"`
	Day           string              `json:"day" binding:"required"`
	Start         string              `json:"start" binding:"required"`
	End           string              `json:"end" binding:"required"`
}

type AddShiftResponse struct {
	Added         []model.Shift       `json:"added"`
	Schedule      model.Schedule      `json:"schedule"`
	AssignedHours model.AssignedHours `json:"assigned_hours"`
	Rows          []allocator.Row     `json:"rows"`
}

type ValidateResponse struct {
	Valid  bool                        `json:"valid"`
	Errors []allocator.ValidationError `json:"errors"`
}

// toWorkers converts roster input, rejecting duplicate emails. Unparsed
// availability text is returned as warnings.
func toWorkers(inputs []WorkerInput) ([]model.Worker, []string, error) {
	workers := make([]model.Worker, 0, len(inputs))
	warnings := make([]string, 0)
	seen := make(map[string]bool, len(inputs))

	for _, in := range inputs {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if seen[email] {
			return nil, nil, fmt.Errorf("duplicate worker email %s", email)
		}
		seen[email] = true

		avail := model.Availability{}
		for day, intervals := range in.Availability {
			if !day.IsValid() {
				return nil, nil, fmt.Errorf("invalid day %q in availability for %s", day, email)
			}
			avail[day] = append(avail[day], intervals...)
		}

		parsed := availability.Parse(in.AvailabilityText)
		for day, intervals := range parsed.Availability {
			avail[day] = append(avail[day], intervals...)
		}
		for _, fragment := range parsed.Unrecognized {
			warnings = append(warnings, fmt.Sprintf("%s: unrecognized availability %q", email, fragment))
		}

		workers = append(workers, model.Worker{
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			Email:            email,
			WorkStudy:        in.WorkStudy,
			Availability:     avail,
			AvailabilityText: in.AvailabilityText,
		})
	}

	return workers, warnings, nil
}

// toOperatingHours accepts full or abbreviated day names and "HH:MM" times.
// A block ending at or before its start runs past midnight.
func toOperatingHours(input map[string][]model.ClockInterval) (model.OperatingHours, error) {
	hours := model.OperatingHours{}
	for dayText, blocks := range input {
		day, ok := model.ParseWeekday(dayText)
		if !ok {
			return nil, fmt.Errorf("invalid day %q in hours", dayText)
		}
		for _, block := range blocks {
			if !clockPattern.MatchString(block.Start) || !clockPattern.MatchString(block.End) {
				return nil, fmt.Errorf("invalid time in %s hours %s-%s, expected HH:MM", day, block.Start, block.End)
			}
			if availability.TimeToHour(block.End) == availability.TimeToHour(block.Start) {
				return nil, fmt.Errorf("%s hours %s-%s are empty", day, block.Start, block.End)
			}
			hours[day] = append(hours[day], block)
		}
	}
	return hours, nil
}
