package services

import (
	"errors"
	"fmt"

	"github.com/finn1817/schedule-app/internal/config"
)

var (
	ErrWorkplaceNotFound = errors.New("workplace not found")
	ErrNoScheduleRuns    = errors.New("no schedule runs found")
	ErrNoDatabase        = errors.New("no database configured, set databaseURL or use a dry run")
	ErrNoRecipients      = errors.New("no recipients given or configured")
)

func lookupWorkplace(cfg *config.Config, name string) (*config.Workplace, error) {
	wp, ok := cfg.Workplace(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkplaceNotFound, name)
	}
	return wp, nil
}
