package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/model"
	"github.com/finn1817/schedule-app/pkg/db"
)

// InsertScheduleRun stores a run and its assignments in one transaction
func (d *DB) InsertScheduleRun(ctx context.Context, run *db.ScheduleRun, assignments []db.ShiftAssignment) error {
	roster, err := json.Marshal(run.Roster)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_run (id, workplace, week_of, seed, roster, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.Workplace, run.WeekOf, run.Seed, roster, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range assignments {
		var email *string
		if !a.IsUnfilled() {
			email = &a.WorkerEmail
		}
		batch.Queue(`
			INSERT INTO shift_assignment (id, run_id, day, start_time, end_time, worker_email, worker_name, work_study)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.RunID, string(a.Day), a.Start, a.End, email, a.WorkerName, a.WorkStudy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert shift assignments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.logger.Debug("Stored schedule run",
		zap.String("run_id", run.ID),
		zap.String("workplace", run.Workplace),
		zap.Int("assignments", len(assignments)))

	return nil
}

// GetScheduleRuns retrieves a workplace's runs, newest first
func (d *DB) GetScheduleRuns(ctx context.Context, workplace string) ([]db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, workplace, week_of, seed, roster, created_at, published_at
		FROM schedule_run
		WHERE workplace = $1
		ORDER BY created_at DESC
	`, workplace)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []db.ScheduleRun
	for rows.Next() {
		var r db.ScheduleRun
		var weekOf time.Time
		var roster []byte
		if err := rows.Scan(&r.ID, &r.Workplace, &weekOf, &r.Seed, &roster, &r.CreatedAt, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		r.WeekOf = weekOf.Format("2006-01-02")
		if err := json.Unmarshal(roster, &r.Roster); err != nil {
			return nil, fmt.Errorf("failed to parse roster for run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}

// GetShiftAssignments retrieves every seat stored for a run
func (d *DB) GetShiftAssignments(ctx context.Context, runID string) ([]db.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, day, start_time, end_time, worker_email, worker_name, work_study
		FROM shift_assignment
		WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ShiftAssignment
	for rows.Next() {
		var a db.ShiftAssignment
		var day string
		var email *string
		if err := rows.Scan(&a.ID, &a.RunID, &day, &a.Start, &a.End, &email, &a.WorkerName, &a.WorkStudy); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		a.Day = model.Weekday(day)
		if email != nil {
			a.WorkerEmail = *email
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift assignments: %w", err)
	}

	return assignments, nil
}

// SetSchedulePublished records when a run was published
func (d *DB) SetSchedulePublished(ctx context.Context, runID string, at time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE schedule_run SET published_at = $2 WHERE id = $1
	`, runID, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to set schedule published_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("schedule run %s not found", runID)
	}
	return nil
}
