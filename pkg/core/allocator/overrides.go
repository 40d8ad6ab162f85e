package allocator

import (
	"errors"
	"fmt"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

var (
	// ErrInvalidShiftTimes is returned when a manual shift does not end after it starts
	ErrInvalidShiftTimes = errors.New("end time must be after start time")

	// ErrNoEligibleWorkers is returned when nobody is available for a manual shift
	ErrNoEligibleWorkers = errors.New("no workers can cover that time slot")
)

// AvailableWorkers returns every worker whose availability fully contains
// [start,end] on the day, in roster order
func AvailableWorkers(workers []model.Worker, day model.Weekday, start, end float64) []model.Worker {
	available := make([]model.Worker, 0)
	for _, w := range workers {
		if IsWorkerAvailable(w, day, start, end) {
			available = append(available, w)
		}
	}
	return available
}

// AddShift inserts a manually requested block into an existing result. Up to
// maxWorkers available workers are seated in roster order and the rest of the
// seats are marked Unfilled. The hour cap is not applied, so an edited result
// may fail ValidateResult's HourCap rule.
func AddShift(result *Result, workers []model.Worker, day model.Weekday, start, end string, maxWorkers int) ([]model.Shift, error) {
	if !day.IsValid() {
		return nil, fmt.Errorf("unknown day %q", day)
	}

	startHour := availability.TimeToHour(start)
	endHour := availability.TimeToHour(end)
	if endHour <= startHour {
		return nil, ErrInvalidShiftTimes
	}

	eligible := AvailableWorkers(workers, day, startHour, endHour)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleWorkers
	}

	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkersPerShift
	}
	if result.Schedule == nil {
		result.Schedule = model.Schedule{}
	}
	if result.AssignedHours == nil {
		result.AssignedHours = model.AssignedHours{}
	}

	startStr := availability.HourToTimeString(startHour)
	endStr := availability.HourToTimeString(endHour)
	names := workerNames(eligible)

	chosen := eligible
	if len(chosen) > maxWorkers {
		chosen = chosen[:maxWorkers]
	}

	added := make([]model.Shift, 0, maxWorkers)
	for _, w := range chosen {
		result.AssignedHours[w.Email] += endHour - startHour
		added = append(added, model.Shift{
			Day:          day,
			Start:        startStr,
			End:          endStr,
			Assigned:     []string{w.Name()},
			RawAssigned:  []string{w.Email},
			Available:    names,
			AllAvailable: eligible,
		})
	}
	for i := len(chosen); i < maxWorkers; i++ {
		added = append(added, model.Shift{
			Day:          day,
			Start:        startStr,
			End:          endStr,
			Assigned:     []string{model.Unfilled},
			RawAssigned:  []string{},
			Available:    names,
			AllAvailable: eligible,
		})
	}

	result.Schedule[day] = append(result.Schedule[day], added...)
	return added, nil
}
