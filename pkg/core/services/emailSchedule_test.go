package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

func TestRenderScheduleEmail(t *testing.T) {
	published := &sheetsclient.PublishedSchedule{
		Workplace: "Library",
		WeekOf:    time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Rows: []allocator.Row{
			{Day: model.Wednesday, Start: "1:00 PM", End: "3:00 PM", Assigned: "Alan Turing"},
			{Day: model.Monday, Start: "9:00 AM", End: "12:00 PM", Assigned: "Ada <Lovelace>"},
			{Day: model.Monday, Start: "12:00 PM", End: "2:00 PM", Assigned: model.Unfilled, Unfilled: true},
		},
		Hours: []allocator.HoursRow{
			{Name: "Ada <Lovelace>", WorkStudy: true, Hours: 5},
			{Name: "Alan Turing", Hours: 2.5},
		},
	}

	body, err := RenderScheduleEmail(published)
	require.NoError(t, err)

	assert.Contains(t, body, "<h2>Library schedule, week of Sun Jan 05 2025</h2>")
	assert.Contains(t, body, `<tr style="background-color: #f8d7da;"><td>12:00 PM</td><td>2:00 PM</td><td>Unfilled</td></tr>`)
	assert.Contains(t, body, "<tr><td>1:00 PM</td><td>3:00 PM</td><td>Alan Turing</td></tr>")
	assert.Contains(t, body, "<td>Ada &lt;Lovelace&gt; (work study)</td><td>5</td>")
	assert.Contains(t, body, "<td>Alan Turing</td><td>2.5</td>")
	assert.NotContains(t, body, "<Lovelace>")

	// Days follow the week order and empty days are left out
	monday := strings.Index(body, "<h3>Monday</h3>")
	wednesday := strings.Index(body, "<h3>Wednesday</h3>")
	assert.True(t, monday >= 0 && wednesday > monday)
	assert.NotContains(t, body, "<h3>Tuesday</h3>")
}

func TestRenderScheduleText(t *testing.T) {
	published := &sheetsclient.PublishedSchedule{
		Workplace: "Library",
		WeekOf:    time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Rows: []allocator.Row{
			{Day: model.Monday, Start: "9:00 AM", End: "12:00 PM", Assigned: "Ada Lovelace"},
			{Day: model.Monday, Start: "12:00 PM", End: "2:00 PM", Assigned: model.Unfilled, Unfilled: true},
		},
		Hours: []allocator.HoursRow{
			{Name: "Ada Lovelace", WorkStudy: true, Hours: 3},
		},
	}

	assert.Equal(t, "Library schedule, week of Sun Jan 05 2025\n"+
		"\nMonday\n"+
		"  9:00 AM - 12:00 PM: Ada Lovelace\n"+
		"  12:00 PM - 2:00 PM: Unfilled\n"+
		"\nHours\n"+
		"  Ada Lovelace (work study): 3\n", RenderScheduleText(published))
}

func TestEmailSchedule_ConfiguredRecipients(t *testing.T) {
	store := &mockScheduleStore{}
	storedRun(store, "run-1", time.Now())
	client := &mockEmailClient{failFor: map[string]error{"lead@example.com": errBoom}}

	result, err := EmailSchedule(context.Background(), store, client, testConfig(), zap.NewNop(), "Library", EmailOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Library - Week of Sun Jan 05 2025", result.Subject)
	assert.Equal(t, []string{"manager@example.com"}, result.Sent)
	assert.ErrorIs(t, result.Failed["lead@example.com"], errBoom)

	require.Len(t, client.sent, 1)
	assert.Equal(t, result.Subject, client.sent[0].subject)
	assert.Contains(t, client.sent[0].body, "Ada Lovelace")
	assert.True(t, client.sent[0].html)
}

func TestEmailSchedule_PlainText(t *testing.T) {
	store := &mockScheduleStore{}
	storedRun(store, "run-1", time.Now())
	client := &mockEmailClient{}

	opts := EmailOptions{Recipients: []string{"ada@example.com"}, PlainText: true}
	result, err := EmailSchedule(context.Background(), store, client, testConfig(), zap.NewNop(), "Library", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"ada@example.com"}, result.Sent)
	require.Len(t, client.sent, 1)
	assert.False(t, client.sent[0].html)
	assert.NotContains(t, client.sent[0].body, "<table")
	assert.Contains(t, client.sent[0].body, "Ada Lovelace")
}

func TestEmailSchedule_ExplicitRecipients(t *testing.T) {
	store := &mockScheduleStore{}
	storedRun(store, "run-1", time.Now())
	client := &mockEmailClient{}

	result, err := EmailSchedule(context.Background(), store, client, testConfig(), zap.NewNop(), "Library", EmailOptions{Recipients: []string{"ada@example.com"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"ada@example.com"}, result.Sent)
	assert.Empty(t, result.Failed)
}

func TestEmailSchedule_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.Recipients = nil

	_, err := EmailSchedule(context.Background(), &mockScheduleStore{}, &mockEmailClient{}, cfg, zap.NewNop(), "Library", EmailOptions{})
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = EmailSchedule(context.Background(), &mockScheduleStore{}, &mockEmailClient{}, testConfig(), zap.NewNop(), "Library", EmailOptions{})
	assert.ErrorIs(t, err, ErrNoScheduleRuns)

	_, err = EmailSchedule(context.Background(), &mockScheduleStore{}, &mockEmailClient{}, testConfig(), zap.NewNop(), "Gym", EmailOptions{})
	assert.ErrorIs(t, err, ErrWorkplaceNotFound)
}
