package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finn1817/schedule-app/pkg/core/allocator"
)

// PublishedSchedule is the export form of one workplace's weekly schedule
type PublishedSchedule struct {
	Workplace string
	WeekOf    time.Time
	Rows      []allocator.Row
	Hours     []allocator.HoursRow
}

// TabTitle returns the tab a schedule is published to, e.g.
// "Library - Week of Sun Jan 05 2025"
func (p *PublishedSchedule) TabTitle() string {
	return fmt.Sprintf("%s - Week of %s", p.Workplace, p.WeekOf.Format("Mon Jan 02 2006"))
}

// PublishSchedule writes the schedule to its own tab, replacing any previous
// contents of a tab with the same title
func (c *Client) PublishSchedule(spreadsheetID string, published *PublishedSchedule) error {
	tabTitle := published.TabTitle()

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return fmt.Errorf("failed to check for existing tab: %w", err)
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, quoteTab(tabTitle)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(spreadsheetID, quoteTab(tabTitle)+"!A1", buildScheduleValues(published)); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

// buildScheduleValues lays out the shift table, a blank row, then the hours summary
func buildScheduleValues(published *PublishedSchedule) [][]interface{} {
	values := make([][]interface{}, 0, len(published.Rows)+len(published.Hours)+3)

	values = append(values, []interface{}{"Day", "Start", "End", "Assigned"})
	for _, row := range published.Rows {
		values = append(values, []interface{}{string(row.Day), row.Start, row.End, row.Assigned})
	}

	values = append(values, []interface{}{})
	values = append(values, []interface{}{"Worker", "Email", "Work Study", "Hours"})
	for _, row := range published.Hours {
		workStudy := "No"
		if row.WorkStudy {
			workStudy = "Yes"
		}
		values = append(values, []interface{}{
			row.Name,
			row.Email,
			workStudy,
			strconv.FormatFloat(row.Hours, 'f', -1, 64),
		})
	}

	return values
}

// quoteTab wraps a tab title for use in A1 notation
func quoteTab(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
