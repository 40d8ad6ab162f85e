package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/finn1817/schedule-app/internal/config"
	"github.com/finn1817/schedule-app/pkg/clients/sheetsclient"
	"github.com/finn1817/schedule-app/pkg/core/allocator"
	"github.com/finn1817/schedule-app/pkg/core/model"
)

// EmailClient sends plain text or HTML email
type EmailClient interface {
	SendEmail(to, subject, body string) error
	SendHTMLEmail(to, subject, htmlBody string) error
}

// EmailOptions controls who receives a schedule and how it is rendered
type EmailOptions struct {
	// Recipients overrides the configured recipients when non-empty
	Recipients []string
	// PlainText sends a text rendering instead of HTML tables
	PlainText bool
}

// EmailResult reports who received the schedule
type EmailResult struct {
	Subject string
	Sent    []string
	Failed  map[string]error
}

var scheduleEmailTemplate = template.Must(template.New("schedule").Funcs(template.FuncMap{
	"hours": func(h float64) string { return strconv.FormatFloat(h, 'f', -1, 64) },
}).Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<h2>{{.Workplace}} schedule, week of {{.WeekOf}}</h2>
{{range .Days}}<h3>{{.Day}}</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Start</th><th>End</th><th>Assigned</th></tr>
{{range .Rows}}<tr{{if .Unfilled}} style="background-color: #f8d7da;"{{end}}><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Assigned}}</td></tr>
{{end}}</table>
{{end}}<h3>Hours</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Worker</th><th>Hours</th></tr>
{{range .Hours}}<tr><td>{{.Name}}{{if .WorkStudy}} (work study){{end}}</td><td>{{hours .Hours}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type emailDay struct {
	Day  model.Weekday
	Rows []allocator.Row
}

// RenderScheduleEmail renders a schedule as an HTML table per day with
// unfilled seats highlighted
func RenderScheduleEmail(published *sheetsclient.PublishedSchedule) (string, error) {
	byDay := make(map[model.Weekday][]allocator.Row)
	for _, row := range published.Rows {
		byDay[row.Day] = append(byDay[row.Day], row)
	}

	days := make([]emailDay, 0, len(byDay))
	for _, day := range model.Days {
		if rows := byDay[day]; len(rows) > 0 {
			days = append(days, emailDay{Day: day, Rows: rows})
		}
	}

	var buf bytes.Buffer
	err := scheduleEmailTemplate.Execute(&buf, struct {
		Workplace string
		WeekOf    string
		Days      []emailDay
		Hours     []allocator.HoursRow
	}{
		Workplace: published.Workplace,
		WeekOf:    published.WeekOf.Format("Mon Jan 02 2006"),
		Days:      days,
		Hours:     published.Hours,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render schedule email: %w", err)
	}

	return buf.String(), nil
}

// RenderScheduleText renders a schedule as plain text, one line per seat
func RenderScheduleText(published *sheetsclient.PublishedSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s schedule, week of %s\n", published.Workplace, published.WeekOf.Format("Mon Jan 02 2006"))

	var lastDay model.Weekday
	for _, row := range published.Rows {
		if row.Day != lastDay {
			fmt.Fprintf(&b, "\n%s\n", row.Day)
			lastDay = row.Day
		}
		fmt.Fprintf(&b, "  %s - %s: %s\n", row.Start, row.End, row.Assigned)
	}

	b.WriteString("\nHours\n")
	for _, row := range published.Hours {
		tag := ""
		if row.WorkStudy {
			tag = " (work study)"
		}
		fmt.Fprintf(&b, "  %s%s: %s\n", row.Name, tag, strconv.FormatFloat(row.Hours, 'f', -1, 64))
	}

	return b.String()
}

// EmailSchedule sends the latest stored run for a workplace to each recipient.
// With no recipients given the configured ones are used. A failed send is
// recorded and the remaining recipients are still tried.
func EmailSchedule(
	ctx context.Context,
	store ScheduleReader,
	emailClient EmailClient,
	cfg *config.Config,
	logger *zap.Logger,
	workplaceName string,
	opts EmailOptions,
) (*EmailResult, error) {
	wp, err := lookupWorkplace(cfg, workplaceName)
	if err != nil {
		return nil, err
	}

	recipients := opts.Recipients
	if len(recipients) == 0 {
		recipients = cfg.Recipients
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	_, published, err := loadLatestSchedule(ctx, store, logger, wp.Name)
	if err != nil {
		return nil, err
	}

	send := emailClient.SendHTMLEmail
	var body string
	if opts.PlainText {
		send = emailClient.SendEmail
		body = RenderScheduleText(published)
	} else {
		body, err = RenderScheduleEmail(published)
		if err != nil {
			return nil, err
		}
	}

	result := &EmailResult{
		Subject: published.TabTitle(),
		Sent:    []string{},
		Failed:  map[string]error{},
	}

	for _, to := range recipients {
		logger.Debug("Sending schedule email", zap.String("to", to))
		if err := send(to, result.Subject, body); err != nil {
			logger.Warn("Failed to send schedule email", zap.String("to", to), zap.Error(err))
			result.Failed[to] = err
			continue
		}
		result.Sent = append(result.Sent, to)
	}

	return result, nil
}
