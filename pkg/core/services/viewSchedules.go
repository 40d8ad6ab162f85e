package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/db"
)

// ScheduleSummary describes one stored run
type ScheduleSummary struct {
	RunID       string
	WeekOf      string
	Seed        int64
	CreatedAt   time.Time
	PublishedAt *time.Time
	Seats       int
	Unfilled    int
	Hours       float64
}

// ViewSchedules summarises a workplace's most recent runs, newest first.
// count <= 0 returns every run.
func ViewSchedules(
	ctx context.Context,
	store ScheduleReader,
	cfg *config.Config,
	logger *zap.Logger,
	workplaceName string,
	count int,
) ([]ScheduleSummary, error) {
	wp, err := lookupWorkplace(cfg, workplaceName)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching schedule runs", zap.String("workplace", wp.Name))
	runs, err := store.GetScheduleRuns(ctx, wp.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w for workplace %s", ErrNoScheduleRuns, wp.Name)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if count > 0 && count < len(runs) {
		runs = runs[:count]
	}

	summaries := make([]ScheduleSummary, 0, len(runs))
	for _, run := range runs {
		assignments, err := store.GetShiftAssignments(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch shift assignments for run %s: %w", run.ID, err)
		}
		summaries = append(summaries, summarizeRun(run, assignments))
	}

	return summaries, nil
}

func summarizeRun(run db.ScheduleRun, assignments []db.ShiftAssignment) ScheduleSummary {
	summary := ScheduleSummary{
		RunID:       run.ID,
		WeekOf:      run.WeekOf,
		Seed:        run.Seed,
		CreatedAt:   run.CreatedAt,
		PublishedAt: run.PublishedAt,
		Seats:       len(assignments),
	}
	for _, a := range assignments {
		if a.IsUnfilled() {
			summary.Unfilled++
		}
	}
	for _, h := range db.AssignedHours(assignments) {
		summary.Hours += h
	}
	return summary
}
