package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/model"
	"github.com/finn1817/schedule-app/pkg/db"
)

var errBoom = errors.New("boom")

type mockRosterClient struct {
	workers  []model.Worker
	warnings []sheetsclient.ParseWarning
	hours    model.OperatingHours
	listErr  error
	hoursErr error
}

func (m *mockRosterClient) ListWorkers(spreadsheetID, tab string) ([]model.Worker, []sheetsclient.ParseWarning, error) {
	if m.listErr != nil {
		return nil, nil, m.listErr
	}
	return m.workers, m.warnings, nil
}

func (m *mockRosterClient) GetOperatingHours(spreadsheetID, tab string) (model.OperatingHours, error) {
	if m.hoursErr != nil {
		return nil, m.hoursErr
	}
	return m.hours, nil
}

type mockScheduleStore struct {
	mu sync.Mutex

	runs        []db.ScheduleRun
	assignments map[string][]db.ShiftAssignment
	published   map[string]time.Time

	insertErr    error
	getRunsErr   error
	publishedErr error
}

func (m *mockScheduleStore) InsertScheduleRun(ctx context.Context, run *db.ScheduleRun, assignments []db.ShiftAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.assignments == nil {
		m.assignments = map[string][]db.ShiftAssignment{}
	}
	m.runs = append(m.runs, *run)
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockScheduleStore) GetScheduleRuns(ctx context.Context, workplace string) ([]db.ScheduleRun, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	var runs []db.ScheduleRun
	for _, r := range m.runs {
		if r.Workplace == workplace {
			runs = append(runs, r)
		}
	}
	return runs, nil
}

func (m *mockScheduleStore) GetShiftAssignments(ctx context.Context, runID string) ([]db.ShiftAssignment, error) {
	return m.assignments[runID], nil
}

func (m *mockScheduleStore) SetSchedulePublished(ctx context.Context, runID string, at time.Time) error {
	if m.publishedErr != nil {
		return m.publishedErr
	}
	if m.published == nil {
		m.published = map[string]time.Time{}
	}
	m.published[runID] = at
	return nil
}

type mockPublisher struct {
	spreadsheetID string
	published     []*sheetsclient.PublishedSchedule
	err           error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.published = append(m.published, published)
	return nil
}

type sentEmail struct {
	to, subject, body string
	html              bool
}

type mockEmailClient struct {
	sent    []sentEmail
	failFor map[string]error
}

func (m *mockEmailClient) SendEmail(to, subject, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *mockEmailClient) SendHTMLEmail(to, subject, htmlBody string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: htmlBody, html: true})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		WorkerSheetID:   "worker-sheet",
		ScheduleSheetID: "schedule-sheet",
		Workplaces: []config.Workplace{
			{Name: "Library", WorkersTab: "Library Workers", HoursTab: "Library Hours"},
			{Name: "Cafe", WorkersTab: "Cafe Workers", HoursTab: "Cafe Hours", MaxWorkersPerShift: 1},
		},
		Recipients: []string{"manager@example.com", "lead@example.com"},
	}
}

func testRoster() *mockRosterClient {
	monday := func(start, end float64) model.Availability {
		return model.Availability{model.Monday: {{StartHour: start, EndHour: end}}}
	}
	return &mockRosterClient{
		workers: []model.Worker{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", WorkStudy: true, Availability: monday(9, 17)},
			{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Availability: monday(9, 17)},
			{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Availability: monday(12, 17)},
		},
		hours: model.OperatingHours{
			model.Monday: {{Start: "09:00", End: "17:00"}},
		},
	}
}

// storedRun seeds a store with one run of three seats on Monday
func storedRun(store *mockScheduleStore, id string, createdAt time.Time) {
	store.runs = append(store.runs, db.ScheduleRun{
		ID:        id,
		Workplace: "Library",
		WeekOf:    "2025-01-05",
		Seed:      7,
		CreatedAt: createdAt,
		Roster:    testRoster().workers,
	})
	if store.assignments == nil {
		store.assignments = map[string][]db.ShiftAssignment{}
	}
	store.assignments[id] = []db.ShiftAssignment{
		{ID: id + "-1", RunID: id, Day: model.Monday, Start: "12:00", End: "14:00", WorkerName: model.Unfilled},
		{ID: id + "-2", RunID: id, Day: model.Monday, Start: "09:00", End: "12:00", WorkerEmail: "ada@example.com", WorkerName: "Ada Lovelace", WorkStudy: true},
		{ID: id + "-3", RunID: id, Day: model.Monday, Start: "09:00", End: "12:00", WorkerEmail: "alan@example.com", WorkerName: "Alan Turing"},
	}
}
