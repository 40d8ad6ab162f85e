package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/model"
	"github.com/finn1817/schedule-app/pkg/db"
)

// RosterClient reads a workplace's workers and operating hours
type RosterClient interface {
	ListWorkers(spreadsheetID, tab string) ([]model.Worker, []sheetsclient.ParseWarning, error)
	GetOperatingHours(spreadsheetID, tab string) (model.OperatingHours, error)
}

// ScheduleWriter persists generated schedules
type ScheduleWriter interface {
	InsertScheduleRun(ctx context.Context, run *db.ScheduleRun, assignments []db.ShiftAssignment) error
}

// GenerateOptions controls a generation run
type GenerateOptions struct {
	// Seed makes the run reproducible. Zero picks a random seed, which is
	// reported in the result.
	Seed int64
	// DryRun skips persistence
	DryRun bool
	// Now is used to find the scheduled week. Zero means time.Now().
	Now time.Time
}

// GeneratedSchedule is the outcome of allocating one workplace
type GeneratedSchedule struct {
	Workplace string
	WeekOf    time.Time
	Seed      int64
	Workers   []model.Worker
	Hours     model.OperatingHours
	Warnings  []sheetsclient.ParseWarning
	Result    *allocator.Result
	// Run is nil for dry runs
	Run *db.ScheduleRun
}

// GenerateSchedule reads the roster and hours for a workplace, allocates a
// weekly schedule and stores it unless opts.DryRun is set
func GenerateSchedule(
	ctx context.Context,
	store ScheduleWriter,
	roster RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
	workplaceName string,
	opts GenerateOptions,
) (*GeneratedSchedule, error) {
	wp, err := lookupWorkplace(cfg, workplaceName)
	if err != nil {
		return nil, err
	}

	if store == nil && !opts.DryRun {
		return nil, ErrNoDatabase
	}

	logger = logger.With(zap.String("workplace", wp.Name))

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weekOf, err := cfg.WeekStart(now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute week start: %w", err)
	}

	logger.Debug("Fetching workers", zap.String("tab", wp.WorkersTab))
	workers, warnings, err := roster.ListWorkers(cfg.WorkerSheetID, wp.WorkersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("Worker sheet warning", zap.String("warning", w.String()))
	}

	logger.Debug("Fetching operating hours", zap.String("tab", wp.HoursTab))
	hours, err := roster.GetOperatingHours(cfg.WorkerSheetID, wp.HoursTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get operating hours: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int64()
	}

	logger.Debug("Allocating shifts",
		zap.Int("workers", len(workers)),
		zap.Int("open_days", len(hours)),
		zap.Int64("seed", seed))

	result := allocator.Allocate(hours, workers, allocatorConfig(wp, seed, logger))

	generated := &GeneratedSchedule{
		Workplace: wp.Name,
		WeekOf:    weekOf,
		Seed:      seed,
		Workers:   workers,
		Hours:     hours,
		Warnings:  warnings,
		Result:    result,
	}

	if opts.DryRun {
		logger.Info("Dry run, schedule not stored")
		return generated, nil
	}
	run := &db.ScheduleRun{
		ID:        uuid.New().String(),
		Workplace: wp.Name,
		WeekOf:    weekOf.Format("2006-01-02"),
		Seed:      seed,
		CreatedAt: now,
		Roster:    workers,
	}
	assignments := db.AssignmentsFromSchedule(run.ID, result.Schedule, workers)

	logger.Debug("Storing schedule run", zap.String("run_id", run.ID), zap.Int("assignments", len(assignments)))
	if err := store.InsertScheduleRun(ctx, run, assignments); err != nil {
		return nil, fmt.Errorf("failed to store schedule run: %w", err)
	}

	generated.Run = run
	return generated, nil
}

// GenerateAllSchedules generates every configured workplace concurrently.
// With a non-zero seed each workplace gets seed plus its index so runs stay
// reproducible without sharing a random sequence.
func GenerateAllSchedules(
	ctx context.Context,
	store ScheduleWriter,
	roster RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateOptions,
) ([]*GeneratedSchedule, error) {
	results := make([]*GeneratedSchedule, len(cfg.Workplaces))

	g, gctx := errgroup.WithContext(ctx)
	for i, wp := range cfg.Workplaces {
		workplaceOpts := opts
		if opts.Seed != 0 {
			workplaceOpts.Seed = opts.Seed + int64(i)
		}

		g.Go(func() error {
			generated, err := GenerateSchedule(gctx, store, roster, cfg, logger, wp.Name, workplaceOpts)
			if err != nil {
				return fmt.Errorf("workplace %s: %w", wp.Name, err)
			}
			results[i] = generated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func allocatorConfig(wp *config.Workplace, seed int64, logger *zap.Logger) allocator.Config {
	allocCfg := allocator.DefaultConfig()
	if wp.MaxHoursPerWorker > 0 {
		allocCfg.MaxHoursPerWorker = wp.MaxHoursPerWorker
	}
	if wp.MaxWorkersPerShift > 0 {
		allocCfg.MaxWorkersPerShift = wp.MaxWorkersPerShift
	}
	if wp.MinHoursPerWorker != nil {
		allocCfg.MinHoursPerWorker = *wp.MinHoursPerWorker
	}
	allocCfg.Random = allocator.NewSeededRandom(seed)
	allocCfg.Logger = logger
	return allocCfg
}
