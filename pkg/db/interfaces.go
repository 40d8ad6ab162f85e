package db

import (
	"context"
	"time"
)

// ScheduleStore defines the interface for schedule database operations
type ScheduleStore interface {
	// InsertScheduleRun stores the run and its assignments atomically
	InsertScheduleRun(ctx context.Context, run *ScheduleRun, assignments []ShiftAssignment) error
	// GetScheduleRuns returns a workplace's runs, newest first
	GetScheduleRuns(ctx context.Context, workplace string) ([]ScheduleRun, error)
	GetShiftAssignments(ctx context.Context, runID string) ([]ShiftAssignment, error)
	SetSchedulePublished(ctx context.Context, runID string, at time.Time) error
}
