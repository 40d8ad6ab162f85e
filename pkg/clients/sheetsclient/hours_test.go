package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

func TestParseOperatingHours(t *testing.T) {
	raw := [][]interface{}{
		{"Day", "Start", "End", "Notes"},
		{"Monday", "9:00", "17:00"},
		{"tue", "08:30", "12:00", "morning"},
		{"Tuesday", "13:00", "20:00"},
		{"", "", ""},
	}

	hours, err := parseOperatingHours(raw)
	require.NoError(t, err)

	assert.Equal(t, model.OperatingHours{
		model.Monday:  {{Start: "09:00", End: "17:00"}},
		model.Tuesday: {{Start: "08:30", End: "12:00"}, {Start: "13:00", End: "20:00"}},
	}, hours)
}

func TestParseOperatingHours_Overnight(t *testing.T) {
	raw := [][]interface{}{
		{"Day", "Start", "End"},
		{"Friday", "22:00", "2:00"},
		{"Saturday", "18:00", "00:00"},
	}

	hours, err := parseOperatingHours(raw)
	require.NoError(t, err)

	assert.Equal(t, model.OperatingHours{
		model.Friday:   {{Start: "22:00", End: "02:00"}},
		model.Saturday: {{Start: "18:00", End: "00:00"}},
	}, hours)
}

func TestParseOperatingHours_Errors(t *testing.T) {
	header := []interface{}{"Day", "Start", "End"}

	tests := []struct {
		name    string
		row     []interface{}
		wantErr string
	}{
		{name: "unknown day", row: []interface{}{"Someday", "09:00", "10:00"}, wantErr: "invalid day"},
		{name: "bad start", row: []interface{}{"Monday", "nine", "10:00"}, wantErr: "invalid start time"},
		{name: "missing end", row: []interface{}{"Monday", "09:00"}, wantErr: "invalid end time"},
		{name: "zero length", row: []interface{}{"Monday", "17:00", "17:00"}, wantErr: "equals start time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOperatingHours([][]interface{}{header, tt.row})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseOperatingHours_MissingColumn(t *testing.T) {
	_, err := parseOperatingHours([][]interface{}{{"Day", "Start"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "End")
}
