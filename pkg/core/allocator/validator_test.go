package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finn1817/schedule-app/pkg/core/model"
)

func assignedShift(day model.Weekday, start, end string, w model.Worker) model.Shift {
	return model.Shift{
		Day:         day,
		Start:       start,
		End:         end,
		Assigned:    []string{w.Name()},
		RawAssigned: []string{w.Email},
	}
}

func rulesOf(errors []ValidationError) []string {
	rules := make([]string, len(errors))
	for i, e := range errors {
		rules[i] = e.Rule
	}
	return rules
}

func TestValidateResult_Valid(t *testing.T) {
	ann := newWorker("Ann", "Able", false, "Monday 09:00-17:00")
	result := emptyResult()
	result.Schedule[model.Monday] = []model.Shift{
		assignedShift(model.Monday, "09:00", "12:00", ann),
		assignedShift(model.Monday, "13:00", "15:00", ann),
	}

	errors := ValidateResult(result, []model.Worker{ann}, DefaultConfig())

	assert.Empty(t, errors)
}

func TestValidateResult_NilResult(t *testing.T) {
	assert.Empty(t, ValidateResult(nil, nil, DefaultConfig()))
}

func TestValidateResult_Availability(t *testing.T) {
	ann := newWorker("Ann", "Able", false, "Monday 09:00-12:00")
	result := emptyResult()
	result.Schedule[model.Monday] = []model.Shift{
		assignedShift(model.Monday, "11:00", "13:00", ann),
		{Day: model.Monday, Start: "09:00", End: "10:00", Assigned: []string{"Zed"}, RawAssigned: []string{"zed@example.com"}},
	}

	errors := ValidateResult(result, []model.Worker{ann}, DefaultConfig())

	require.Len(t, errors, 2)
	assert.Equal(t, []string{RuleAvailability, RuleAvailability}, rulesOf(errors))
	assert.Contains(t, errors[0].Description, "Ann Able is not available")
	assert.Equal(t, "11:00", errors[0].Start)
	assert.Contains(t, errors[1].Description, "zed@example.com is not on the roster")
}

func TestValidateResult_SelfOverlap(t *testing.T) {
	ann := newWorker("Ann", "Able", false, "Monday 09:00-17:00")
	result := emptyResult()
	result.Schedule[model.Monday] = []model.Shift{
		assignedShift(model.Monday, "09:00", "12:00", ann),
		assignedShift(model.Monday, "11:00", "13:00", ann),
	}

	errors := ValidateResult(result, []model.Worker{ann}, DefaultConfig())

	require.Len(t, errors, 1)
	assert.Equal(t, RuleSelfOverlap, errors[0].Rule)
	assert.Equal(t, model.Monday, errors[0].Day)
	assert.Contains(t, errors[0].Description, "also works 11:00-13:00")
}

func TestValidateResult_SeatCap(t *testing.T) {
	ann := newWorker("Ann", "Able", false, "Monday 09:00-17:00")
	ben := newWorker("Ben", "Baker", false, "Monday 09:00-17:00")
	result := emptyResult()
	result.Schedule[model.Monday] = []model.Shift{
		assignedShift(model.Monday, "09:00", "12:00", ann),
		assignedShift(model.Monday, "09:00", "12:00", ben),
	}

	cfg := DefaultConfig()
	cfg.MaxWorkersPerShift = 1
	errors := ValidateResult(result, []model.Worker{ann, ben}, cfg)

	require.Len(t, errors, 1)
	assert.Equal(t, RuleSeatCap, errors[0].Rule)
	assert.Contains(t, errors[0].Description, "more than 1 seats at 09:00-12:00")
}

func TestValidateResult_HourCap(t *testing.T) {
	ann := newWorker("Ann", "Able", false, "Monday 08:00-20:00")
	result := emptyResult()
	result.Schedule[model.Monday] = []model.Shift{
		assignedShift(model.Monday, "08:00", "13:00", ann),
		assignedShift(model.Monday, "14:00", "19:00", ann),
	}

	cfg := DefaultConfig()
	cfg.MaxHoursPerWorker = 8
	errors := ValidateResult(result, []model.Worker{ann}, cfg)

	require.Len(t, errors, 1)
	assert.Equal(t, RuleHourCap, errors[0].Rule)
	assert.Contains(t, errors[0].Description, "Ann Able has 10.00h but max is 8.00h")
}

func TestValidateResult_WorkStudyQuota(t *testing.T) {
	sam := newWorker("Sam", "Study", true, "Monday 08:00-20:00")

	t.Run("over quota", func(t *testing.T) {
		result := emptyResult()
		result.Schedule[model.Monday] = []model.Shift{assignedShift(model.Monday, "08:00", "14:00", sam)}

		errors := ValidateResult(result, []model.Worker{sam}, DefaultConfig())

		assert.Equal(t, []string{RuleWorkStudyQuota}, rulesOf(errors))
	})

	t.Run("unreported shortfall", func(t *testing.T) {
		result := emptyResult()
		result.Schedule[model.Monday] = []model.Shift{assignedShift(model.Monday, "08:00", "11:00", sam)}

		errors := ValidateResult(result, []model.Worker{sam}, DefaultConfig())

		assert.Equal(t, []string{RuleWorkStudyQuota}, rulesOf(errors))
	})

	t.Run("reported shortfall", func(t *testing.T) {
		result := emptyResult()
		result.Schedule[model.Monday] = []model.Shift{assignedShift(model.Monday, "08:00", "11:00", sam)}
		result.WorkStudyIssues = []string{"Sam Study (3h)"}

		assert.Empty(t, ValidateResult(result, []model.Worker{sam}, DefaultConfig()))
	})
}
