package sheetsclient

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

var hoursFields = []string{"Day", "Start", "End"}

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// GetOperatingHours reads a workplace's open blocks from its hours tab
func (c *Client) GetOperatingHours(spreadsheetID, tab string) (model.OperatingHours, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get operating hours: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	hours, err := parseOperatingHours(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operating hours: %w", err)
	}

	return hours, nil
}

// parseOperatingHours reads Day/Start/End rows. A day may appear on several
// rows for split opening times, and a block ending before it starts closes
// the next morning. Clock values are normalised to "HH:MM".
func parseOperatingHours(raw [][]interface{}) (model.OperatingHours, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	indexes, err := headerIndex(raw[0], hoursFields)
	if err != nil {
		return nil, err
	}

	hours := model.OperatingHours{}
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		dayText := strings.TrimSpace(cell(indexes, "Day", row))
		if dayText == "" {
			continue
		}

		day, ok := model.ParseWeekday(dayText)
		if !ok {
			return nil, fmt.Errorf("invalid day %q in row %d", dayText, i+1)
		}

		start, err := normaliseClock(cell(indexes, "Start", row))
		if err != nil {
			return nil, fmt.Errorf("invalid start time in row %d: %w", i+1, err)
		}
		end, err := normaliseClock(cell(indexes, "End", row))
		if err != nil {
			return nil, fmt.Errorf("invalid end time in row %d: %w", i+1, err)
		}
		// An end before the start closes after midnight
		if end == start {
			return nil, fmt.Errorf("end time %s equals start time in row %d", end, i+1)
		}

		hours[day] = append(hours[day], model.ClockInterval{Start: start, End: end})
	}

	return hours, nil
}

func normaliseClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !clockPattern.MatchString(value) {
		return "", fmt.Errorf("expected HH:MM, got %q", value)
	}
	return availability.HourToTimeString(availability.TimeToHour(value)), nil
}
