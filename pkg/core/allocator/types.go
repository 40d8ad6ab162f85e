package allocator

import (
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

const (
	// WorkStudyHours is the fixed weekly quota for every work-study worker
	WorkStudyHours = 5.0

	// DefaultMaxHoursPerWorker caps regular assignment per worker per week
	DefaultMaxHoursPerWorker = 20.0

	// DefaultMaxWorkersPerShift is the number of seats per carved block
	DefaultMaxWorkersPerShift = 2

	// DefaultMinHoursPerWorker is the threshold for MinHoursIssues
	DefaultMinHoursPerWorker = 3.0

	// LowHoursThreshold is the upper bound (exclusive) for LowHours
	LowHoursThreshold = 4.0

	// BackToBackBuffer is how close (in hours) a previous shift's end may be to a
	// new shift's start before the worker is skipped
	BackToBackBuffer = 0.5

	// AlternativeCapFactor relaxes MaxHoursPerWorker when suggesting cover for unfilled shifts
	AlternativeCapFactor = 1.5

	// MinFreeSlotHours is the shortest free operating window the greedy phase will carve
	MinFreeSlotHours = 2.0

	epsilon = 1e-9
)

// ShiftLengths are the candidate block lengths (hours) for the greedy phase
var ShiftLengths = []int{2, 3, 4, 5}

// Config contains the tunable parameters for one allocation run
type Config struct {
	// MaxHoursPerWorker is the most hours any worker may be assigned
	MaxHoursPerWorker float64

	// MaxWorkersPerShift is the number of seats created for each carved block
	MaxWorkersPerShift int

	// MinHoursPerWorker flags regular workers who end the run below it.
	// Zero is a valid value; use DefaultConfig for the usual threshold.
	MinHoursPerWorker float64

	// Random drives shift-length choice and tie breaks. Nil means NewRandom().
	Random Random

	// Logger receives skip and shortfall warnings. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the standard parameters with an entropy-seeded Random
func DefaultConfig() Config {
	return Config{
		MaxHoursPerWorker:  DefaultMaxHoursPerWorker,
		MaxWorkersPerShift: DefaultMaxWorkersPerShift,
		MinHoursPerWorker:  DefaultMinHoursPerWorker,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxHoursPerWorker <= 0 {
		c.MaxHoursPerWorker = DefaultMaxHoursPerWorker
	}
	if c.MaxWorkersPerShift <= 0 {
		c.MaxWorkersPerShift = DefaultMaxWorkersPerShift
	}
	if c.Random == nil {
		c.Random = NewRandom()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// AllocationState is everything one run mutates. It is created by Allocate
// and never shared between runs.
type AllocationState struct {
	Workers        []model.Worker
	OperatingHours model.OperatingHours
	Schedule       model.Schedule

	// AssignedHours only grows during a run
	AssignedHours model.AssignedHours

	// AvailabilityHours is each worker's total weekly availability, independent of operating hours
	AvailabilityHours map[string]float64

	UnfilledShifts []model.UnfilledShift

	// WorkStudyAvailabilityIssues are found before allocation starts
	WorkStudyAvailabilityIssues []WorkStudyAvailabilityIssue

	// shiftLengths is shuffled once per run
	shiftLengths []int

	cfg Config
}

// NewAllocationState initialises hours bookkeeping for every worker
func NewAllocationState(hours model.OperatingHours, workers []model.Worker, cfg Config) *AllocationState {
	cfg = cfg.withDefaults()

	state := &AllocationState{
		Workers:           workers,
		OperatingHours:    hours,
		Schedule:          model.Schedule{},
		AssignedHours:     make(model.AssignedHours, len(workers)),
		AvailabilityHours: make(map[string]float64, len(workers)),
		UnfilledShifts:    []model.UnfilledShift{},
		shiftLengths:      append([]int(nil), ShiftLengths...),
		cfg:               cfg,
	}

	for _, w := range workers {
		state.AssignedHours[w.Email] = 0
		state.AvailabilityHours[w.Email] = w.Availability.TotalHours()
	}

	cfg.Random.ShuffleInts(state.shiftLengths)

	return state
}

// Result is the full output of one allocation run
type Result struct {
	Schedule      model.Schedule      `json:"schedule"`
	AssignedHours model.AssignedHours `json:"assigned_hours"`

	// LowHours are regular workers with some, but fewer than LowHoursThreshold, hours
	LowHours []string `json:"low_hours"`

	// Unassigned are workers with no hours at all
	Unassigned []string `json:"unassigned"`

	// WorkStudyIssues combines pre-allocation availability shortfalls with
	// work-study workers who did not end on exactly WorkStudyHours
	WorkStudyIssues []string `json:"ws_issues"`

	// MinHoursIssues are regular workers below MinHoursPerWorker
	MinHoursIssues []string `json:"min_hours_issues"`

	UnfilledShifts []model.UnfilledShift `json:"unfilled_shifts"`

	// AlternativeSolutions maps "{day} {start}-{end}" to workers who could cover
	// the unfilled block under the relaxed hour cap
	AlternativeSolutions map[string][]string `json:"alt_sols"`

	// ValidationErrors lists invariant violations found in the final schedule
	ValidationErrors []ValidationError `json:"validation_errors"`
}

// emptyResult is returned when there is nothing to allocate
func emptyResult() *Result {
	return &Result{
		Schedule:             model.Schedule{},
		AssignedHours:        model.AssignedHours{},
		LowHours:             []string{},
		Unassigned:           []string{},
		WorkStudyIssues:      []string{},
		MinHoursIssues:       []string{},
		UnfilledShifts:       []model.UnfilledShift{},
		AlternativeSolutions: map[string][]string{},
		ValidationErrors:     []ValidationError{},
	}
}
