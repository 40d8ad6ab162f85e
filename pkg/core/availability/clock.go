package availability

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimeToHour converts an "HH:MM" clock string to decimal hours ("14:30" -> 14.5).
// Plain numbers are accepted as hours; anything else yields 0.
func TimeToHour(t string) float64 {
	t = strings.TrimSpace(t)
	if parts := strings.Split(t, ":"); len(parts) == 2 {
		h, herr := strconv.Atoi(parts[0])
		m, merr := strconv.Atoi(parts[1])
		if herr == nil && merr == nil {
			return float64(h) + float64(m)/60
		}
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return 0
}

// HourToTimeString converts decimal hours to "HH:MM". Values of 24 or more keep
// their hour component ("25:30") so wrapped intervals survive a round trip.
func HourToTimeString(hour float64) string {
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatTimeAMPM renders "HH:MM" as "h:mm AM/PM". Malformed input is returned unchanged.
func FormatTimeAMPM(t string) string {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 {
		return t
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return t
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return t
	}

	// Wrapped clock values (e.g. "25:00") display as the next-day time
	hour %= 24

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
