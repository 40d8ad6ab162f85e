package allocator

import (
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Allocate builds a weekly schedule in two phases. Work-study workers are
// placed first so they reach their quota, then every remaining operating
// window is carved into blocks and filled by fairness ranking.
//
// Allocate never fails. Empty operating hours or an empty roster produce an
// empty Result, and every shortfall is reported in the Result's diagnostics.
func Allocate(hours model.OperatingHours, workers []model.Worker, cfg Config) *Result {
	if len(hours) == 0 || len(workers) == 0 {
		return emptyResult()
	}

	state := NewAllocationState(hours, workers, cfg)
	logger := state.cfg.Logger

	logger.Debug("Starting allocation",
		zap.Int("workers", len(workers)),
		zap.Int("days", len(hours)),
		zap.Float64("maxHoursPerWorker", state.cfg.MaxHoursPerWorker),
		zap.Int("maxWorkersPerShift", state.cfg.MaxWorkersPerShift),
		zap.Ints("shiftLengths", state.shiftLengths))

	// Pre-check work-study availability before any placement
	state.WorkStudyAvailabilityIssues = CheckWorkStudyAvailability(workers, hours)
	for _, issue := range state.WorkStudyAvailabilityIssues {
		logger.Warn("Work-study worker cannot reach quota",
			zap.String("worker", issue.Worker.Name()),
			zap.Float64("matchingHours", issue.MatchingHours))
	}

	// Phase 1: work-study quota
	state.allocateWorkStudy()

	// Phase 2: greedy fill of what is left
	state.allocateGreedy()

	result := state.buildResult()
	result.ValidationErrors = ValidateResult(result, workers, state.cfg)

	for _, verr := range result.ValidationErrors {
		logger.Warn("Schedule failed validation",
			zap.String("rule", verr.Rule),
			zap.String("day", string(verr.Day)),
			zap.String("description", verr.Description))
	}

	logger.Debug("Allocation complete",
		zap.Int("unfilledShifts", len(result.UnfilledShifts)),
		zap.Int("workStudyIssues", len(result.WorkStudyIssues)),
		zap.Int("unassigned", len(result.Unassigned)))

	return result
}
