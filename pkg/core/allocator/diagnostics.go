package allocator

import (
	"math"
	"sort"
	"strconv"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

// FindAlternativeWorkers returns every worker not in excluded who is available
// for the whole of [start,end] on the day and would stay within maxHours,
// least assigned first
func FindAlternativeWorkers(
	workers []model.Worker,
	day model.Weekday,
	start, end float64,
	assigned model.AssignedHours,
	maxHours float64,
	excluded []string,
) []model.Worker {
	alts := make([]model.Worker, 0)
	for _, w := range workers {
		if containsString(excluded, w.Email) {
			continue
		}
		if IsWorkerAvailable(w, day, start, end) && assigned[w.Email]+(end-start) <= maxHours+epsilon {
			alts = append(alts, w)
		}
	}

	sort.SliceStable(alts, func(i, j int) bool {
		return assigned[alts[i].Email] < assigned[alts[j].Email]
	})

	return alts
}

// buildResult computes every diagnostic collection from the final state
func (s *AllocationState) buildResult() *Result {
	result := emptyResult()
	result.Schedule = s.Schedule
	result.AssignedHours = s.AssignedHours
	result.UnfilledShifts = s.UnfilledShifts

	flagged := make(map[string]bool, len(s.WorkStudyAvailabilityIssues))
	for _, issue := range s.WorkStudyAvailabilityIssues {
		result.WorkStudyIssues = append(result.WorkStudyIssues, issue.String())
		flagged[issue.Worker.Name()] = true
	}

	for _, w := range s.Workers {
		hours := s.AssignedHours[w.Email]

		if hours == 0 {
			result.Unassigned = append(result.Unassigned, w.Name())
		}

		if w.WorkStudy {
			if math.Abs(hours-WorkStudyHours) > epsilon && !flagged[w.Name()] {
				rounded := math.Round(hours*100) / 100
				result.WorkStudyIssues = append(result.WorkStudyIssues,
					w.Name()+" ("+strconv.FormatFloat(rounded, 'f', -1, 64)+"h)")
			}
			continue
		}

		if hours > 0 && hours < LowHoursThreshold {
			result.LowHours = append(result.LowHours, w.Name())
		}
		if hours < s.cfg.MinHoursPerWorker {
			result.MinHoursIssues = append(result.MinHoursIssues, w.Name())
		}
	}

	expandedCap := s.cfg.MaxHoursPerWorker * AlternativeCapFactor
	for _, us := range s.UnfilledShifts {
		alts := FindAlternativeWorkers(s.Workers, us.Day, us.StartHour, us.EndHour, s.AssignedHours, expandedCap, nil)
		if len(alts) > 0 {
			result.AlternativeSolutions[us.Key()] = workerNames(alts)
		}
	}

	return result
}
