package model

import "strings"

// Weekday is a day of the operating week, spelled out in full ("Monday")
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Days is the canonical week order used for iteration and output layout
var Days = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Index returns the position of the day in Days, or -1 if it is not a weekday
func (d Weekday) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

func (d Weekday) IsValid() bool {
	return d.Index() >= 0
}

// ParseWeekday accepts full day names and three letter abbreviations, case-insensitively
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, day := range Days {
		full := strings.ToLower(string(day))
		if s == full || s == full[:3] {
			return day, true
		}
	}
	return "", false
}

// Unfilled is the sentinel name placed in Shift.Assigned for an empty seat
const Unfilled = "Unfilled"

// Interval is a span of decimal hours on one day. EndHour may exceed 24 for
// spans that wrap past midnight.
type Interval struct {
	StartHour float64 `json:"start_hour"`
	EndHour   float64 `json:"end_hour"`
}

// Duration returns the length of the interval in hours
func (i Interval) Duration() float64 {
	return i.EndHour - i.StartHour
}

// Availability maps each weekday to the intervals a worker can work
type Availability map[Weekday][]Interval

// TotalHours sums every interval regardless of operating hours
func (a Availability) TotalHours() float64 {
	total := 0.0
	for _, intervals := range a {
		for _, interval := range intervals {
			total += interval.Duration()
		}
	}
	return total
}

// Worker is a member of the roster. Email is the unique key.
type Worker struct {
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email"`
	WorkStudy        bool         `json:"work_study"`
	Availability     Availability `json:"availability"`
	AvailabilityText string       `json:"availability_text,omitempty"`
}

// Name returns the display name used in schedules and reports
func (w Worker) Name() string {
	return w.FirstName + " " + w.LastName
}

// ClockInterval is an operating-hours block expressed as "HH:MM" clock strings
type ClockInterval struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// OperatingHours maps each weekday to the organization's open blocks
type OperatingHours map[Weekday][]ClockInterval

// Shift is one seat of one time block. Every assigned worker gets their own
// Shift entry; an empty seat carries the Unfilled sentinel.
type Shift struct {
	Day          Weekday  `json:"day"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Assigned     []string `json:"assigned"`
	RawAssigned  []string `json:"raw_assigned"`
	Available    []string `json:"available"`
	AllAvailable []Worker `json:"-"`
	IsWorkStudy  bool     `json:"is_work_study,omitempty"`
}

// IsUnfilled reports whether this seat has no worker
func (s Shift) IsUnfilled() bool {
	return len(s.RawAssigned) == 0
}

// Schedule maps each weekday to its shifts
type Schedule map[Weekday][]Shift

// AssignedHours maps worker email to hours assigned in a run
type AssignedHours map[string]float64

// UnfilledShift records a carved block with an empty seat
type UnfilledShift struct {
	Day       Weekday `json:"day"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	StartHour float64 `json:"start_hour"`
	EndHour   float64 `json:"end_hour"`
}

// Key returns the "{day} {start}-{end}" form used to index alternative solutions
func (u UnfilledShift) Key() string {
	return string(u.Day) + " " + u.Start + "-" + u.End
}
