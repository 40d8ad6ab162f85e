package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/db"
)

// ScheduleReader loads stored schedule runs
type ScheduleReader interface {
	GetScheduleRuns(ctx context.Context, workplace string) ([]db.ScheduleRun, error)
	GetShiftAssignments(ctx context.Context, runID string) ([]db.ShiftAssignment, error)
}

// PublishScheduleStore is a ScheduleReader that can mark runs as published
type PublishScheduleStore interface {
	ScheduleReader
	SetSchedulePublished(ctx context.Context, runID string, at time.Time) error
}

// SchedulePublisher writes a schedule to a spreadsheet
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error
}

// PublishSchedule writes the latest stored run for a workplace to the schedule sheet
func PublishSchedule(
	ctx context.Context,
	store PublishScheduleStore,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	workplaceName string,
) (*sheetsclient.PublishedSchedule, error) {
	wp, err := lookupWorkplace(cfg, workplaceName)
	if err != nil {
		return nil, err
	}

	run, published, err := loadLatestSchedule(ctx, store, logger, wp.Name)
	if err != nil {
		return nil, err
	}

	logger.Debug("Publishing schedule", zap.String("run_id", run.ID), zap.String("tab", published.TabTitle()))
	if err := publisher.PublishSchedule(cfg.ScheduleSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	if err := store.SetSchedulePublished(ctx, run.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to record publication: %w", err)
	}

	return published, nil
}

// loadLatestSchedule rebuilds the newest stored run of a workplace in export form
func loadLatestSchedule(ctx context.Context, store ScheduleReader, logger *zap.Logger, workplace string) (*db.ScheduleRun, *sheetsclient.PublishedSchedule, error) {
	logger.Debug("Fetching schedule runs", zap.String("workplace", workplace))
	runs, err := store.GetScheduleRuns(ctx, workplace)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil, fmt.Errorf("%w for workplace %s", ErrNoScheduleRuns, workplace)
	}
	run := latestRun(runs)

	logger.Debug("Fetching shift assignments", zap.String("run_id", run.ID))
	assignments, err := store.GetShiftAssignments(ctx, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch shift assignments: %w", err)
	}

	weekOf, err := time.Parse("2006-01-02", run.WeekOf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse week of run %s: %w", run.ID, err)
	}

	published := &sheetsclient.PublishedSchedule{
		Workplace: run.Workplace,
		WeekOf:    weekOf,
		Rows:      allocator.Rows(db.ScheduleFromAssignments(assignments)),
		Hours:     allocator.HoursSummary(run.Roster, db.AssignedHours(assignments)),
	}

	return run, published, nil
}

// latestRun picks the most recently created run
func latestRun(runs []db.ScheduleRun) *db.ScheduleRun {
	latest := &runs[0]
	for i := range runs[1:] {
		if runs[i+1].CreatedAt.After(latest.CreatedAt) {
			latest = &runs[i+1]
		}
	}
	return latest
}
