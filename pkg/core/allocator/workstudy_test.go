package allocator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

func totalDuration(placements []Placement) float64 {
	total := 0.0
	for _, p := range placements {
		total += p.Duration
	}
	return total
}

func TestFindOptimalShiftSplit_NoWindows(t *testing.T) {
	placements := FindOptimalShiftSplit(nil, WorkStudyHours, true)
	assert.NotNil(t, placements)
	assert.Empty(t, placements)

	placements = FindOptimalShiftSplit([]Window{{Day: model.Monday, Start: 9, End: 17}}, 0, true)
	assert.Empty(t, placements)
}

func TestFindOptimalShiftSplit_PrefersThreeTwo(t *testing.T) {
	windows := []Window{
		{Day: model.Wednesday, Start: 8, End: 16},
		{Day: model.Monday, Start: 9, End: 12.1},
		{Day: model.Tuesday, Start: 13, End: 15},
	}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

	require.Len(t, placements, 2)
	assert.Equal(t, Placement{Day: model.Monday, Start: 9, End: 12, Duration: 3}, placements[0])
	assert.Equal(t, Placement{Day: model.Tuesday, Start: 13, End: 15, Duration: 2}, placements[1])
}

func TestFindOptimalShiftSplit_SplitsLongWindowInPlace(t *testing.T) {
	windows := []Window{{Day: model.Monday, Start: 9, End: 17}}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

	require.Len(t, placements, 2)
	assert.Equal(t, Placement{Day: model.Monday, Start: 9, End: 12, Duration: 3}, placements[0])
	assert.Equal(t, Placement{Day: model.Monday, Start: 12, End: 14, Duration: 2}, placements[1])
}

func TestFindOptimalShiftSplit_ShortfallReturnsAllWindows(t *testing.T) {
	windows := []Window{
		{Day: model.Monday, Start: 9, End: 11},
		{Day: model.Tuesday, Start: 9, End: 10},
	}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

	require.Len(t, placements, 2)
	assert.InDelta(t, 3.0, totalDuration(placements), 1e-9)
}

func TestFindOptimalShiftSplit_ConsumesShortestFirst(t *testing.T) {
	windows := []Window{
		{Day: model.Wednesday, Start: 9, End: 13},
		{Day: model.Monday, Start: 9, End: 10.5},
		{Day: model.Tuesday, Start: 9, End: 10},
	}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

	require.Len(t, placements, 3)
	assert.Equal(t, model.Tuesday, placements[0].Day)
	assert.Equal(t, model.Monday, placements[1].Day)
	assert.Equal(t, Placement{Day: model.Wednesday, Start: 9, End: 11.5, Duration: 2.5}, placements[2])
	assert.InDelta(t, WorkStudyHours, totalDuration(placements), 1e-9)
}

func TestFindOptimalShiftSplit_NoSplitWhenNotPreferred(t *testing.T) {
	windows := []Window{{Day: model.Monday, Start: 9, End: 17}}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, false)

	require.Len(t, placements, 1)
	assert.Equal(t, Placement{Day: model.Monday, Start: 9, End: 14, Duration: 5}, placements[0])
}

func TestFindOptimalShiftSplit_SkipsOverlappingWindows(t *testing.T) {
	// Overlapping availability intervals produce overlapping windows
	windows := []Window{
		{Day: model.Monday, Start: 9, End: 11},
		{Day: model.Monday, Start: 10, End: 12.5},
		{Day: model.Tuesday, Start: 9, End: 13},
	}

	placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if a.Day == b.Day {
				assert.False(t, Overlaps(a.Start, a.End, b.Start, b.End), "%v overlaps %v", a, b)
			}
		}
	}
	assert.LessOrEqual(t, totalDuration(placements), WorkStudyHours+1e-9)
}

// The split search is a heuristic: it may fall short, but it never places
// more than the target or time outside the windows
func TestFindOptimalShiftSplit_NeverExceedsTarget(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 17))

	for run := 0; run < 500; run++ {
		n := 1 + r.IntN(4)
		windows := make([]Window, 0, n)
		for i := 0; i < n; i++ {
			start := float64(8 + r.IntN(8))
			length := float64(1+r.IntN(12)) / 2
			windows = append(windows, Window{Day: model.Days[r.IntN(len(model.Days))], Start: start, End: start + length})
		}

		placements := FindOptimalShiftSplit(windows, WorkStudyHours, true)

		assert.LessOrEqual(t, totalDuration(placements), WorkStudyHours+1e-9)
		for _, p := range placements {
			contained := false
			for _, w := range windows {
				if w.Day == p.Day && w.Start <= p.Start+1e-9 && p.End <= w.End+1e-9 {
					contained = true
				}
			}
			assert.True(t, contained, "placement %v outside windows %v", p, windows)
		}
	}
}

func TestWorkStudyWindows_WrapsOvernight(t *testing.T) {
	hours := model.OperatingHours{model.Friday: {{Start: "20:00", End: "02:00"}}}
	w := newWorker("Sam", "Study", true, "Friday 22:00-01:00, Monday 09:00-12:00")

	windows := WorkStudyWindows(w, hours)

	require.Len(t, windows, 1)
	assert.Equal(t, Window{Day: model.Friday, Start: 22, End: 25}, windows[0])
}

func TestCheckWorkStudyAvailability(t *testing.T) {
	hours := model.OperatingHours{model.Monday: {{Start: "10:00", End: "17:00"}}}
	short := newWorker("Ann", "Lee", true, "Monday 09:00-12:00")
	enough := newWorker("Bob", "Ray", true, "Monday 09:00-17:00")
	regular := newWorker("Cal", "Fox", false, "Monday 09:00-10:00")

	issues := CheckWorkStudyAvailability([]model.Worker{short, enough, regular}, hours)

	require.Len(t, issues, 1)
	assert.Equal(t, short.Email, issues[0].Worker.Email)
	assert.InDelta(t, 2.0, issues[0].MatchingHours, 1e-9)
	assert.Equal(t, "Ann Lee: Only 2.0 hours available during operating hours (needs 5)", issues[0].String())
}

func TestAllocateWorkStudy_SkipsPlacementOverCap(t *testing.T) {
	hours := model.OperatingHours{model.Monday: {{Start: "09:00", End: "17:00"}}}
	student := newWorker("Sam", "Study", true, "Monday 09:00-17:00")

	state := NewAllocationState(hours, []model.Worker{student}, Config{
		MaxHoursPerWorker:  4,
		MaxWorkersPerShift: 1,
		Random:             NewSeededRandom(1),
	})
	state.allocateWorkStudy()

	// 09:00-12:00 fits, 12:00-14:00 would reach 5h against a 4h cap
	require.Len(t, state.Schedule[model.Monday], 1)
	assert.Equal(t, "09:00", state.Schedule[model.Monday][0].Start)
	assert.Equal(t, 3.0, state.AssignedHours[student.Email])
}
