package availability

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

var (
	blockSeparator = regexp.MustCompile(`,\s*`)
	blockPattern   = regexp.MustCompile(`(?i)^(\w+)\s+(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
)

// Result holds parsed availability and the fragments that could not be understood
type Result struct {
	Availability model.Availability
	Unrecognized []string
}

// Parse converts free text like "Monday 12:00-15:00, Tue 14:00-18:00" into
// intervals per weekday. An end time at or before the start time is taken to
// be on the next day, so "Tue 18:00-02:00" becomes Tuesday 18.0-26.0.
// Multiple intervals on one day are kept as given.
func Parse(text string) Result {
	result := Result{
		Availability: model.Availability{},
		Unrecognized: []string{},
	}

	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, block := range blockSeparator.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		m := blockPattern.FindStringSubmatch(block)
		if m == nil {
			result.Unrecognized = append(result.Unrecognized, block)
			continue
		}

		day, ok := model.ParseWeekday(m[1])
		if !ok {
			result.Unrecognized = append(result.Unrecognized, block)
			continue
		}

		start := TimeToHour(m[2])
		end := TimeToHour(m[3])
		if end <= start {
			end += 24.0
		}

		result.Availability[day] = append(result.Availability[day], model.Interval{
			StartHour: start,
			EndHour:   end,
		})
	}

	return result
}

// ParseAvailability returns only the structured intervals from Parse
func ParseAvailability(text string) model.Availability {
	return Parse(text).Availability
}

// FormatAvailability renders availability back into the text form accepted by
// Parse, days in canonical order. Wrapped end times are written modulo 24.
func FormatAvailability(avail model.Availability) string {
	blocks := make([]string, 0)
	for _, day := range model.Days {
		for _, interval := range avail[day] {
			end := interval.EndHour
			if end >= 24 {
				end -= 24
			}
			blocks = append(blocks, fmt.Sprintf("%s %s-%s",
				day,
				HourToTimeString(interval.StartHour),
				HourToTimeString(end),
			))
		}
	}
	return strings.Join(blocks, ", ")
}
