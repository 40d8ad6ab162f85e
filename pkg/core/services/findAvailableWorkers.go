package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// FindAvailableWorkers lists the workers of a workplace whose availability
// covers day start-end, for covering a shift at short notice
func FindAvailableWorkers(
	ctx context.Context,
	roster RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
	workplaceName string,
	day model.Weekday,
	start, end string,
) ([]model.Worker, error) {
	wp, err := lookupWorkplace(cfg, workplaceName)
	if err != nil {
		return nil, err
	}

	if !day.IsValid() {
		return nil, fmt.Errorf("invalid day %q", day)
	}

	startHour := availability.TimeToHour(start)
	endHour := availability.TimeToHour(end)
	if endHour <= startHour {
		return nil, fmt.Errorf("%w: %s-%s", allocator.ErrInvalidShiftTimes, start, end)
	}

	logger.Debug("Fetching workers", zap.String("workplace", wp.Name), zap.String("tab", wp.WorkersTab))
	workers, _, err := roster.ListWorkers(cfg.WorkerSheetID, wp.WorkersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	available := allocator.AvailableWorkers(workers, day, startHour, endHour)
	logger.Debug("Found available workers", zap.Int("count", len(available)))

	return available, nil
}
