package allocator

import (
	"fmt"
	"math"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Rule names reported in ValidationError.Rule
const (
	RuleAvailability   = "Availability"
	RuleSeatCap        = "SeatCap"
	RuleHourCap        = "HourCap"
	RuleSelfOverlap    = "SelfOverlap"
	RuleWorkStudyQuota = "WorkStudyQuota"
)

// ValidationError describes a schedule that breaks one of the allocation rules
type ValidationError struct {
	Day         model.Weekday `json:"day,omitempty"`
	Start       string        `json:"start,omitempty"`
	End         string        `json:"end,omitempty"`
	Rule        string        `json:"rule"`
	Description string        `json:"description"`
}

// ValidateResult checks a result against the roster and parameters it was
// produced with. An empty slice means the schedule is valid. Schedules edited
// with AddShift may legitimately break the hour cap.
func ValidateResult(result *Result, workers []model.Worker, cfg Config) []ValidationError {
	cfg = cfg.withDefaults()
	errors := make([]ValidationError, 0)
	if result == nil {
		return errors
	}

	byEmail := make(map[string]model.Worker, len(workers))
	for _, w := range workers {
		byEmail[w.Email] = w
	}

	for _, day := range model.Days {
		shifts := result.Schedule[day]
		seats := make(map[string]int)

		for i, shift := range shifts {
			blk := shiftInterval(shift)
			slot := shift.Start + "-" + shift.End
			seats[slot]++
			if seats[slot] == cfg.MaxWorkersPerShift+1 {
				errors = append(errors, newValidationError(day, shift, RuleSeatCap,
					fmt.Sprintf("more than %d seats at %s", cfg.MaxWorkersPerShift, slot)))
			}

			if len(shift.RawAssigned) > cfg.MaxWorkersPerShift {
				errors = append(errors, newValidationError(day, shift, RuleSeatCap,
					fmt.Sprintf("shift has %d workers but max is %d", len(shift.RawAssigned), cfg.MaxWorkersPerShift)))
			}

			for _, email := range shift.RawAssigned {
				w, ok := byEmail[email]
				if !ok {
					errors = append(errors, newValidationError(day, shift, RuleAvailability,
						fmt.Sprintf("%s is not on the roster", email)))
					continue
				}
				if !IsWorkerAvailable(w, day, blk.StartHour, blk.EndHour) {
					errors = append(errors, newValidationError(day, shift, RuleAvailability,
						fmt.Sprintf("%s is not available for the whole shift", w.Name())))
				}

				for _, other := range shifts[i+1:] {
					if !containsString(other.RawAssigned, email) {
						continue
					}
					o := shiftInterval(other)
					if Overlaps(blk.StartHour, blk.EndHour, o.StartHour, o.EndHour) {
						errors = append(errors, newValidationError(day, shift, RuleSelfOverlap,
							fmt.Sprintf("%s also works %s-%s", w.Name(), other.Start, other.End)))
					}
				}
			}
		}

	}

	for _, w := range workers {
		worked := scheduledHours(result.Schedule, w.Email)

		if w.WorkStudy {
			if worked > WorkStudyHours+epsilon {
				errors = append(errors, ValidationError{
					Rule:        RuleWorkStudyQuota,
					Description: fmt.Sprintf("%s has %.2fh but the quota is %.0fh", w.Name(), worked, WorkStudyHours),
				})
			} else if math.Abs(worked-WorkStudyHours) > epsilon && !hasWorkStudyIssue(result.WorkStudyIssues, w) {
				errors = append(errors, ValidationError{
					Rule:        RuleWorkStudyQuota,
					Description: fmt.Sprintf("%s has %.2fh and no shortfall was reported", w.Name(), worked),
				})
			}
		}

		if worked > cfg.MaxHoursPerWorker+epsilon {
			errors = append(errors, ValidationError{
				Rule:        RuleHourCap,
				Description: fmt.Sprintf("%s has %.2fh but max is %.2fh", w.Name(), worked, cfg.MaxHoursPerWorker),
			})
		}
	}

	return errors
}

func newValidationError(day model.Weekday, shift model.Shift, rule, description string) ValidationError {
	return ValidationError{
		Day:         day,
		Start:       shift.Start,
		End:         shift.End,
		Rule:        rule,
		Description: description,
	}
}

// scheduledHours sums the shifts a worker actually holds
func scheduledHours(schedule model.Schedule, email string) float64 {
	total := 0.0
	for _, shifts := range schedule {
		for _, shift := range shifts {
			if containsString(shift.RawAssigned, email) {
				total += availability.TimeToHour(shift.End) - availability.TimeToHour(shift.Start)
			}
		}
	}
	return total
}

func hasWorkStudyIssue(issues []string, w model.Worker) bool {
	for _, issue := range issues {
		if strings.HasPrefix(issue, w.Name()) {
			return true
		}
	}
	return false
}
