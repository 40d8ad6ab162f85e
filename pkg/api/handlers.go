package api

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	logger *zap.Logger
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ParseAvailability parses free text availability and echoes it in canonical form
func (h *Handler) ParseAvailability(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed := availability.Parse(req.Text)
	c.JSON(http.StatusOK, ParseResponse{
		Availability: parsed.Availability,
		Formatted:    availability.FormatAvailability(parsed.Availability),
		TotalHours:   parsed.Availability.TotalHours(),
		Unrecognized: parsed.Unrecognized,
	})
}

// GenerateSchedule runs one allocation over the posted roster and hours
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workers, warnings, err := toWorkers(req.Workers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, err := toOperatingHours(req.Hours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Int64()
	}

	cfg := req.Params.config()
	cfg.Random = allocator.NewSeededRandom(seed)
	cfg.Logger = h.logger

	result := allocator.Allocate(hours, workers, cfg)

	h.logger.Debug("Generated schedule over API",
		zap.Int("workers", len(workers)),
		zap.Int64("seed", seed),
		zap.Int("unfilled", len(result.UnfilledShifts)))

	c.JSON(http.StatusOK, ScheduleResponse{
		Seed:     seed,
		Result:   result,
		Rows:     allocator.Rows(result.Schedule),
		Hours:    allocator.HoursSummary(workers, result.AssignedHours),
		Warnings: warnings,
	})
}

// ValidateSchedule checks a posted schedule against its roster and parameters
func (h *Handler) ValidateSchedule(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workers, _, err := toWorkers(req.Workers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := &allocator.Result{
		Schedule:        req.Schedule,
		WorkStudyIssues: req.WorkStudyIssues,
	}
	errs := allocator.ValidateResult(result, workers, req.Params.config())

	c.JSON(http.StatusOK, ValidateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

// AddShift seats available workers in a manually requested block. The hour
// cap is not applied.
func (h *Handler) AddShift(c *gin.Context) {
	var req AddShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, ok := model.ParseWeekday(req.Day)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day " + req.Day})
		return
	}
	if !clockPattern.MatchString(req.Start) || !clockPattern.MatchString(req.End) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be HH:MM"})
		return
	}

	workers, _, err := toWorkers(req.Workers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := &allocator.Result{
		Schedule:      req.Schedule,
		AssignedHours: req.AssignedHours,
	}
	added, err := allocator.AddShift(result, workers, day, req.Start, req.End, req.Params.config().MaxWorkersPerShift)
	switch {
	case errors.Is(err, allocator.ErrInvalidShiftTimes):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, allocator.ErrNoEligibleWorkers):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Debug("Added manual shift",
		zap.String("day", string(day)),
		zap.String("start", req.Start),
		zap.String("end", req.End),
		zap.Int("seats", len(added)))

	c.JSON(http.StatusOK, AddShiftResponse{
		Added:         added,
		Schedule:      result.Schedule,
		AssignedHours: result.AssignedHours,
		Rows:          allocator.Rows(result.Schedule),
	})
}
