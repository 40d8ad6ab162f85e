package allocator

import (
	"math"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Overlaps reports whether [s1,e1) and [s2,e2) share any time
func Overlaps(s1, e1, s2, e2 float64) bool {
	return math.Max(s1, s2) < math.Min(e1, e2)
}

// IsWorkerAvailable is true iff one availability interval on the day fully
// contains [start,end]. Partial cover does not count.
func IsWorkerAvailable(worker model.Worker, day model.Weekday, start, end float64) bool {
	for _, a := range worker.Availability[day] {
		if a.StartHour <= start+epsilon && end <= a.EndHour+epsilon {
			return true
		}
	}
	return false
}

// RecentlyScheduled is true iff the worker already has a shift on the day whose
// end is within buffer hours of start
func RecentlyScheduled(email string, day model.Weekday, start float64, schedule model.Schedule, buffer float64) bool {
	for _, shift := range schedule[day] {
		if !containsString(shift.RawAssigned, email) {
			continue
		}
		if math.Abs(availability.TimeToHour(shift.End)-start) < buffer {
			return true
		}
	}
	return false
}

// operatingBlocks converts the clock blocks for a day into decimal intervals,
// wrapping blocks that end at or before they start past midnight
func operatingBlocks(hours model.OperatingHours, day model.Weekday) []model.Interval {
	blocks := make([]model.Interval, 0, len(hours[day]))
	for _, op := range hours[day] {
		start := availability.TimeToHour(op.Start)
		end := availability.TimeToHour(op.End)
		if end <= start {
			end += 24
		}
		blocks = append(blocks, model.Interval{StartHour: start, EndHour: end})
	}
	return blocks
}

// shiftInterval returns the decimal bounds of a scheduled shift
func shiftInterval(shift model.Shift) model.Interval {
	return model.Interval{
		StartHour: availability.TimeToHour(shift.Start),
		EndHour:   availability.TimeToHour(shift.End),
	}
}

// subtractScheduled removes every scheduled block on the day from [start,end]
// and returns the disjoint free remainder
func subtractScheduled(start, end float64, shifts []model.Shift) []model.Interval {
	free := []model.Interval{{StartHour: start, EndHour: end}}

	for _, shift := range shifts {
		blk := shiftInterval(shift)
		next := make([]model.Interval, 0, len(free)+1)
		for _, f := range free {
			if f.EndHour <= blk.StartHour || f.StartHour >= blk.EndHour {
				next = append(next, f)
				continue
			}
			if f.StartHour < blk.StartHour {
				next = append(next, model.Interval{StartHour: f.StartHour, EndHour: blk.StartHour})
			}
			if f.EndHour > blk.EndHour {
				next = append(next, model.Interval{StartHour: blk.EndHour, EndHour: f.EndHour})
			}
		}
		free = next
	}

	return free
}

// workerShiftOverlaps reports whether the worker already holds a shift on the
// day that overlaps [start,end)
func workerShiftOverlaps(schedule model.Schedule, email string, day model.Weekday, start, end float64) bool {
	for _, shift := range schedule[day] {
		if !containsString(shift.RawAssigned, email) {
			continue
		}
		blk := shiftInterval(shift)
		if Overlaps(blk.StartHour, blk.EndHour, start, end) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func workerNames(workers []model.Worker) []string {
	names := make([]string, len(workers))
	for i, w := range workers {
		names[i] = w.Name()
	}
	return names
}
