package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/finn1817/schedule-app/pkg/core/availability"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// Expected column names in a workers tab
var workerFields = []string{
	"First Name",
	"Last Name",
	"Email",
	"Work Study",
	"Days & Times Available",
}

// ParseWarning describes a row that was skipped or only partly understood
type ParseWarning struct {
	Row     int    `json:"row"`
	Worker  string `json:"worker,omitempty"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	if w.Worker == "" {
		return fmt.Sprintf("row %d: %s", w.Row, w.Message)
	}
	return fmt.Sprintf("row %d (%s): %s", w.Row, w.Worker, w.Message)
}

// ListWorkers reads the roster from one tab of the workers spreadsheet
func (c *Client) ListWorkers(spreadsheetID, tab string) ([]model.Worker, []ParseWarning, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get worker data: %w", err)
	}

	if len(values) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet is empty")
	}

	workers, warnings, err := parseWorkers(values)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse workers: %w", err)
	}

	return workers, warnings, nil
}

// parseWorkers converts raw spreadsheet data into Worker structs. Rows are
// numbered as they appear in the sheet, header included.
func parseWorkers(raw [][]interface{}) ([]model.Worker, []ParseWarning, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	indexes, err := headerIndex(raw[0], workerFields)
	if err != nil {
		return nil, nil, err
	}

	workers := make([]model.Worker, 0, len(raw)-1)
	warnings := make([]ParseWarning, 0)
	seen := make(map[string]int)

	for i := 1; i < len(raw); i++ {
		row := raw[i]
		rowNumber := i + 1

		firstName := strings.TrimSpace(cell(indexes, "First Name", row))
		lastName := strings.TrimSpace(cell(indexes, "Last Name", row))
		// Skip empty rows
		if firstName == "" && lastName == "" {
			continue
		}
		name := strings.TrimSpace(firstName + " " + lastName)

		email := strings.ToLower(strings.TrimSpace(cell(indexes, "Email", row)))
		if email == "" {
			warnings = append(warnings, ParseWarning{Row: rowNumber, Worker: name, Message: "missing email, worker skipped"})
			continue
		}
		if first, ok := seen[email]; ok {
			warnings = append(warnings, ParseWarning{
				Row:     rowNumber,
				Worker:  name,
				Message: fmt.Sprintf("duplicate email %s (first seen in row %d), worker skipped", email, first),
			})
			continue
		}
		seen[email] = rowNumber

		text := strings.TrimSpace(cell(indexes, "Days & Times Available", row))
		parsed := availability.Parse(text)
		for _, fragment := range parsed.Unrecognized {
			warnings = append(warnings, ParseWarning{
				Row:     rowNumber,
				Worker:  name,
				Message: fmt.Sprintf("unrecognized availability %q", fragment),
			})
		}

		workers = append(workers, model.Worker{
			FirstName:        firstName,
			LastName:         lastName,
			Email:            email,
			WorkStudy:        parseWorkStudy(cell(indexes, "Work Study", row)),
			Availability:     parsed.Availability,
			AvailabilityText: text,
		})
	}

	return workers, warnings, nil
}

func parseWorkStudy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true":
		return true
	}
	return false
}
