package allocator

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Split search tolerances for the preferred 3h + 2h placement
const (
	longBlockHours  = 3.0
	shortBlockHours = 2.0
	splitTolerance  = 0.2
)

// Window is a stretch of time on one day where a worker is available and the
// organization is open
type Window struct {
	Day   model.Weekday
	Start float64
	End   float64
}

func (w Window) Duration() float64 {
	return w.End - w.Start
}

// Placement is a block chosen for a work-study worker
type Placement struct {
	Day      model.Weekday
	Start    float64
	End      float64
	Duration float64
}

// WorkStudyAvailabilityIssue flags a work-study worker whose availability
// overlaps operating hours for less than WorkStudyHours
type WorkStudyAvailabilityIssue struct {
	Worker        model.Worker
	MatchingHours float64
	Message       string
}

// String renders the issue in the "Name: message" form used in WorkStudyIssues
func (i WorkStudyAvailabilityIssue) String() string {
	return i.Worker.Name() + ": " + i.Message
}

// WorkStudyWindows intersects every operating block with every availability
// interval of the worker on the same day. Days are visited in canonical order.
func WorkStudyWindows(worker model.Worker, hours model.OperatingHours) []Window {
	windows := make([]Window, 0)
	for _, day := range model.Days {
		for _, op := range operatingBlocks(hours, day) {
			for _, a := range worker.Availability[day] {
				s := math.Max(op.StartHour, a.StartHour)
				e := math.Min(op.EndHour, a.EndHour)
				if e > s {
					windows = append(windows, Window{Day: day, Start: s, End: e})
				}
			}
		}
	}
	return windows
}

// CheckWorkStudyAvailability reports every work-study worker whose
// availability overlaps operating hours for less than WorkStudyHours. It does
// not account for other workers' claims on the same time. Windows from
// overlapping operating blocks on one day are summed, so overlapping blocks
// can hide a shortfall here that the final quota check still reports.
func CheckWorkStudyAvailability(workers []model.Worker, hours model.OperatingHours) []WorkStudyAvailabilityIssue {
	issues := make([]WorkStudyAvailabilityIssue, 0)
	for _, w := range workers {
		if !w.WorkStudy {
			continue
		}

		matching := 0.0
		for _, window := range WorkStudyWindows(w, hours) {
			matching += window.Duration()
		}

		if matching < WorkStudyHours-epsilon {
			issues = append(issues, WorkStudyAvailabilityIssue{
				Worker:        w,
				MatchingHours: matching,
				Message:       fmt.Sprintf("Only %.1f hours available during operating hours (needs 5)", matching),
			})
		}
	}
	return issues
}

// FindOptimalShiftSplit chooses placements adding up to target hours.
//
// If the windows total less than target, every window is returned whole and
// the caller reports the shortfall. Otherwise, when preferSplit is set and the
// target is the work-study quota, it looks for a ~3h window and a different
// ~2h window (within splitTolerance) and takes exactly 3h and 2h from them.
// Failing that, windows are consumed shortest first until the target is met;
// a window that can hold the whole quota before anything has been taken is
// split in place into 3h followed by 2h.
//
// This is a bounded heuristic. It can return less than target when a perfect
// split exists outside its tolerance, which the caller reports as a shortfall.
func FindOptimalShiftSplit(windows []Window, target float64, preferSplit bool) []Placement {
	if len(windows) == 0 || target <= 0 {
		return []Placement{}
	}

	total := 0.0
	for _, w := range windows {
		total += w.Duration()
	}
	if total < target-epsilon {
		placements := make([]Placement, 0, len(windows))
		for _, w := range windows {
			placements = append(placements, Placement{Day: w.Day, Start: w.Start, End: w.End, Duration: w.Duration()})
		}
		return placements
	}

	isQuota := math.Abs(target-WorkStudyHours) < epsilon

	if preferSplit && isQuota {
		if placements, ok := findThreeTwoSplit(windows); ok {
			return placements
		}
	}

	sorted := append([]Window(nil), windows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration() < sorted[j].Duration()
	})

	placements := make([]Placement, 0)
	remaining := target

	for _, w := range sorted {
		if remaining <= epsilon {
			break
		}

		d := w.Duration()

		if preferSplit && isQuota && len(placements) == 0 && d >= target-epsilon {
			placements = append(placements,
				Placement{Day: w.Day, Start: w.Start, End: w.Start + longBlockHours, Duration: longBlockHours},
				Placement{Day: w.Day, Start: w.Start + longBlockHours, End: w.Start + target, Duration: shortBlockHours},
			)
			break
		}

		// Windows can overlap when availability intervals overlap; never place
		// the same time twice
		if overlapsPlacements(placements, w.Day, w.Start, w.Start+math.Min(d, remaining)) {
			continue
		}

		take := math.Min(d, remaining)
		placements = append(placements, Placement{Day: w.Day, Start: w.Start, End: w.Start + take, Duration: take})
		remaining -= take
	}

	return placements
}

// findThreeTwoSplit finds a ~3h window and a different ~2h window that can each
// hold their full block
func findThreeTwoSplit(windows []Window) ([]Placement, bool) {
	for i, w1 := range windows {
		if !withinTolerance(w1.Duration(), longBlockHours) {
			continue
		}
		for j, w2 := range windows {
			if i == j || !withinTolerance(w2.Duration(), shortBlockHours) {
				continue
			}
			if w1.Day == w2.Day && Overlaps(w1.Start, w1.Start+longBlockHours, w2.Start, w2.Start+shortBlockHours) {
				continue
			}
			return []Placement{
				{Day: w1.Day, Start: w1.Start, End: w1.Start + longBlockHours, Duration: longBlockHours},
				{Day: w2.Day, Start: w2.Start, End: w2.Start + shortBlockHours, Duration: shortBlockHours},
			}, true
		}
	}
	return nil, false
}

// withinTolerance accepts durations near the block length that can still
// contain the whole block
func withinTolerance(duration, block float64) bool {
	return duration >= block-epsilon && duration <= block+splitTolerance+epsilon
}

func overlapsPlacements(placements []Placement, day model.Weekday, start, end float64) bool {
	for _, p := range placements {
		if p.Day == day && Overlaps(p.Start, p.End, start, end) {
			return true
		}
	}
	return false
}

// allocateWorkStudy gives every work-study worker their quota before regular
// fill. The most constrained workers (least total availability) go first.
func (s *AllocationState) allocateWorkStudy() {
	logger := s.cfg.Logger

	students := make([]model.Worker, 0)
	for _, w := range s.Workers {
		if w.WorkStudy {
			students = append(students, w)
		}
	}
	sort.SliceStable(students, func(i, j int) bool {
		return s.AvailabilityHours[students[i].Email] < s.AvailabilityHours[students[j].Email]
	})

	for _, w := range students {
		windows := WorkStudyWindows(w, s.OperatingHours)
		placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

		logger.Debug("Work-study placements",
			zap.String("worker", w.Name()),
			zap.Int("windows", len(windows)),
			zap.Int("placements", len(placements)))

		for _, p := range placements {
			s.placeWorkStudy(w, p)
		}

		if got := s.AssignedHours[w.Email]; got < WorkStudyHours-epsilon {
			logger.Warn("Work-study worker below quota",
				zap.String("worker", w.Name()),
				zap.Float64("hours", got),
				zap.Float64("quota", WorkStudyHours))
		}
	}
}

// placeWorkStudy appends one work-study shift unless the exact slot is already
// saturated, it clashes with the worker's own shift, or it would break the cap.
// Skipped hours are not granted.
func (s *AllocationState) placeWorkStudy(w model.Worker, p Placement) {
	logger := s.cfg.Logger
	start := availability.HourToTimeString(p.Start)
	end := availability.HourToTimeString(p.End)

	existing := 0
	for _, shift := range s.Schedule[p.Day] {
		if shift.Start == start && shift.End == end {
			existing++
		}
	}

	fields := []zap.Field{
		zap.String("worker", w.Name()),
		zap.String("day", string(p.Day)),
		zap.String("start", start),
		zap.String("end", end),
	}

	switch {
	case existing >= s.cfg.MaxWorkersPerShift:
		logger.Warn("Skipping work-study shift: slot already at max workers per shift", fields...)
		return
	case workerShiftOverlaps(s.Schedule, w.Email, p.Day, p.Start, p.End):
		logger.Warn("Skipping work-study shift: overlaps an existing shift", fields...)
		return
	case s.AssignedHours[w.Email]+p.Duration > s.cfg.MaxHoursPerWorker+epsilon:
		logger.Warn("Skipping work-study shift: exceeds max hours per worker", fields...)
		return
	}

	s.Schedule[p.Day] = append(s.Schedule[p.Day], model.Shift{
		Day:          p.Day,
		Start:        start,
		End:          end,
		Assigned:     []string{w.Name()},
		RawAssigned:  []string{w.Email},
		Available:    []string{w.Name()},
		AllAvailable: []model.Worker{w},
		IsWorkStudy:  true,
	})
	s.addHours(w.Email, p.Duration)
}
