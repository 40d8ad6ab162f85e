package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

func TestTabTitle(t *testing.T) {
	published := &PublishedSchedule{
		Workplace: "Library",
		WeekOf:    time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Library - Week of Sun Jan 05 2025", published.TabTitle())
}

func TestQuoteTab(t *testing.T) {
	assert.Equal(t, "'Library - Week of Sun Jan 05 2025'", quoteTab("Library - Week of Sun Jan 05 2025"))
	assert.Equal(t, "'Joe''s Cafe'", quoteTab("Joe's Cafe"))
}

func TestBuildScheduleValues(t *testing.T) {
	published := &PublishedSchedule{
		Workplace: "Library",
		Rows: []allocator.Row{
			{Day: model.Monday, Start: "9:00 AM", End: "12:00 PM", Assigned: "Ada Lovelace"},
			{Day: model.Monday, Start: "12:00 PM", End: "2:00 PM", Assigned: model.Unfilled, Unfilled: true},
		},
		Hours: []allocator.HoursRow{
			{Name: "Ada Lovelace", Email: "ada@example.com", WorkStudy: true, Hours: 5},
			{Name: "Alan Turing", Email: "alan@example.com", Hours: 2.5},
		},
	}

	assert.Equal(t, [][]interface{}{
		{"Day", "Start", "End", "Assigned"},
		{"Monday", "9:00 AM", "12:00 PM", "Ada Lovelace"},
		{"Monday", "12:00 PM", "2:00 PM", "Unfilled"},
		{},
		{"Worker", "Email", "Work Study", "Hours"},
		{"Ada Lovelace", "ada@example.com", "Yes", "5"},
		{"Alan Turing", "alan@example.com", "No", "2.5"},
	}, buildScheduleValues(published))
}
