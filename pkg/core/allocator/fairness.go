package allocator

import (
	"math"
	"sort"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

// FairnessScore is assigned hours relative to total availability. Lower scores
// are preferred, so workers with little availability are not squeezed out by
// workers who are free all week.
func (s *AllocationState) FairnessScore(email string) float64 {
	return s.AssignedHours[email] / math.Max(s.AvailabilityHours[email], 1)
}

// rankByFairness orders candidates by ascending fairness score, breaking
// ties with a random draw per candidate
func (s *AllocationState) rankByFairness(candidates []model.Worker) []model.Worker {
	type ranked struct {
		worker   model.Worker
		score    float64
		tiebreak float64
	}

	keyed := make([]ranked, len(candidates))
	for i, w := range candidates {
		keyed[i] = ranked{
			worker:   w,
			score:    s.FairnessScore(w.Email),
			tiebreak: s.cfg.Random.Float64(),
		}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].score != keyed[j].score {
			return keyed[i].score < keyed[j].score
		}
		return keyed[i].tiebreak < keyed[j].tiebreak
	})

	out := make([]model.Worker, len(keyed))
	for i, k := range keyed {
		out[i] = k.worker
	}
	return out
}

// addHours records assigned time for a worker
func (s *AllocationState) addHours(email string, hours float64) {
	s.AssignedHours[email] += hours
}
