package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

var workerHeader = []interface{}{"First Name", "Last Name", "Email", "Work Study", "Days & Times Available"}

func TestParseWorkers(t *testing.T) {
	raw := [][]interface{}{
		workerHeader,
		{"Ada", "Lovelace", " Ada@Example.com ", "Yes", "Monday 09:00-12:00, Tue 18:00-02:00"},
		{"Alan", "Turing", "alan@example.com", "no", "Wed 10:00-14:00, sometimes fri"},
		{},
		{"Grace", "Hopper", "grace@example.com", "y"},
	}

	workers, warnings, err := parseWorkers(raw)
	require.NoError(t, err)
	require.Len(t, workers, 3)

	ada := workers[0]
	assert.Equal(t, "ada@example.com", ada.Email)
	assert.True(t, ada.WorkStudy)
	assert.Equal(t, []model.Interval{{StartHour: 9, EndHour: 12}}, ada.Availability[model.Monday])
	assert.Equal(t, []model.Interval{{StartHour: 18, EndHour: 26}}, ada.Availability[model.Tuesday])

	alan := workers[1]
	assert.False(t, alan.WorkStudy)
	assert.Equal(t, []model.Interval{{StartHour: 10, EndHour: 14}}, alan.Availability[model.Wednesday])

	// Short rows are padded with empty values
	grace := workers[2]
	assert.True(t, grace.WorkStudy)
	assert.Empty(t, grace.Availability)

	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Row)
	assert.Equal(t, "Alan Turing", warnings[0].Worker)
	assert.Contains(t, warnings[0].Message, "sometimes fri")
}

func TestParseWorkers_SkipsMissingAndDuplicateEmails(t *testing.T) {
	raw := [][]interface{}{
		workerHeader,
		{"Ada", "Lovelace", "ada@example.com", "", "Mon 09:00-12:00"},
		{"Nobody", "", "", "", "Mon 09:00-12:00"},
		{"Ada", "Again", "ADA@example.com", "", "Tue 09:00-12:00"},
	}

	workers, warnings, err := parseWorkers(raw)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "Lovelace", workers[0].LastName)

	require.Len(t, warnings, 2)
	assert.Equal(t, "row 3 (Nobody): missing email, worker skipped", warnings[0].String())
	assert.Contains(t, warnings[1].Message, "first seen in row 2")
}

func TestParseWorkers_MissingColumn(t *testing.T) {
	raw := [][]interface{}{
		{"First Name", "Last Name", "Email", "Work Study"},
	}

	_, _, err := parseWorkers(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Days & Times Available")
}

func TestParseWorkers_NoHeader(t *testing.T) {
	_, _, err := parseWorkers(nil)
	assert.Error(t, err)
}

func TestParseWorkStudy(t *testing.T) {
	for _, value := range []string{"yes", "Y", " TRUE "} {
		assert.True(t, parseWorkStudy(value), value)
	}
	for _, value := range []string{"", "no", "n", "false", "maybe"} {
		assert.False(t, parseWorkStudy(value), value)
	}
}
