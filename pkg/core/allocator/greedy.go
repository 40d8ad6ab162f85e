package allocator

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// allocateGreedy fills every free operating window left after the work-study
// phase. Each day's free slots are carved into blocks and each block gets up
// to MaxWorkersPerShift seats.
func (s *AllocationState) allocateGreedy() {
	for _, day := range model.Days {
		for _, block := range operatingBlocks(s.OperatingHours, day) {
			free := subtractScheduled(block.StartHour, block.EndHour, s.Schedule[day])

			sort.SliceStable(free, func(i, j int) bool {
				return free[i].Duration() < free[j].Duration()
			})

			for _, slot := range free {
				if slot.Duration() < MinFreeSlotHours-epsilon {
					continue
				}
				s.carveSlot(day, slot)
			}
		}
	}
}

// carveSlot walks a free slot from its start, choosing a random length that
// still fits each time. The last block is clipped to the slot end and may be
// shorter than the smallest length.
func (s *AllocationState) carveSlot(day model.Weekday, slot model.Interval) {
	lengths := make([]int, 0, len(s.shiftLengths))
	for _, l := range s.shiftLengths {
		if float64(l) <= slot.Duration()+epsilon {
			lengths = append(lengths, l)
		}
	}
	if len(lengths) == 0 {
		lengths = []int{2}
	}

	cur := slot.StartHour
	for cur < slot.EndHour-epsilon {
		s.cfg.Random.ShuffleInts(lengths)

		length := lengths[0]
		for _, l := range lengths {
			if cur+float64(l) <= slot.EndHour+epsilon {
				length = l
				break
			}
		}

		end := math.Min(cur+float64(length), slot.EndHour)
		s.fillBlock(day, cur, end)
		cur = end
	}
}

// eligibleWorkers returns every worker who may take [start,end) on the day in
// the greedy phase
func (s *AllocationState) eligibleWorkers(day model.Weekday, start, end float64) []model.Worker {
	duration := end - start
	eligible := make([]model.Worker, 0)

	for _, w := range s.Workers {
		assigned := s.AssignedHours[w.Email]

		// Work-study workers only top up a partial quota here, never past it
		if w.WorkStudy && (assigned >= WorkStudyHours-epsilon || assigned == 0 ||
			assigned+duration > WorkStudyHours+epsilon) {
			continue
		}

		if RecentlyScheduled(w.Email, day, start, s.Schedule, BackToBackBuffer) {
			continue
		}

		if !IsWorkerAvailable(w, day, start, end) {
			continue
		}

		if assigned+duration > s.cfg.MaxHoursPerWorker+epsilon {
			continue
		}

		eligible = append(eligible, w)
	}

	return eligible
}

// fillBlock seats the fairest eligible workers in one carved block and records
// an Unfilled seat for each one left over
func (s *AllocationState) fillBlock(day model.Weekday, start, end float64) {
	startStr := availability.HourToTimeString(start)
	endStr := availability.HourToTimeString(end)

	eligible := s.rankByFairness(s.eligibleWorkers(day, start, end))
	names := workerNames(eligible)

	chosen := eligible
	if len(chosen) > s.cfg.MaxWorkersPerShift {
		chosen = chosen[:s.cfg.MaxWorkersPerShift]
	}

	for _, w := range chosen {
		s.addHours(w.Email, end-start)
	}

	for _, w := range chosen {
		s.Schedule[day] = append(s.Schedule[day], model.Shift{
			Day:          day,
			Start:        startStr,
			End:          endStr,
			Assigned:     []string{w.Name()},
			RawAssigned:  []string{w.Email},
			Available:    names,
			AllAvailable: eligible,
		})
	}

	for i := len(chosen); i < s.cfg.MaxWorkersPerShift; i++ {
		s.UnfilledShifts = append(s.UnfilledShifts, model.UnfilledShift{
			Day:       day,
			Start:     startStr,
			End:       endStr,
			StartHour: start,
			EndHour:   end,
		})
		s.Schedule[day] = append(s.Schedule[day], model.Shift{
			Day:          day,
			Start:        startStr,
			End:          endStr,
			Assigned:     []string{model.Unfilled},
			RawAssigned:  []string{},
			Available:    names,
			AllAvailable: eligible,
		})
	}

	s.cfg.Logger.Debug("Filled block",
		zap.String("day", string(day)),
		zap.String("start", startStr),
		zap.String("end", endStr),
		zap.Int("eligible", len(eligible)),
		zap.Int("assigned", len(chosen)))
}
