package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOutcome(t *testing.T) (*Outcome, []Employee) {
	t.Helper()
	employees := []Employee{{ID: "e1", WeeklyHours: 16, Active: true}}
	outcome, err := Generate(GenerateInput{
		WeekStart: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		Employees: employees,
		Seed:      1,
	})
	require.NoError(t, err)
	return outcome, employees
}

func violationInvariants(violations []Violation) []string {
	names := make([]string, len(violations))
	for i, v := range violations {
		names[i] = v.Invariant
	}
	return names
}

func TestCheckSchedule_CleanPlan(t *testing.T) {
	outcome, employees := validOutcome(t)

	assert.Empty(t, CheckSchedule(outcome, employees))
}

func TestCheckSchedule_DetectsDoubleAssignment(t *testing.T) {
	outcome, employees := validOutcome(t)
	outcome.Assignments = append(outcome.Assignments, Assignment{
		EmployeeID: "e1",
		Date:       outcome.Week.Start,
		Shift:      ShiftAfternoon,
	})

	violations := CheckSchedule(outcome, employees)

	assert.Contains(t, violationInvariants(violations), "one_shift_per_day")
}

func TestCheckSchedule_DetectsMissingDay(t *testing.T) {
	outcome, employees := validOutcome(t)
	outcome.Assignments = outcome.Assignments[:6]

	violations := CheckSchedule(outcome, employees)

	assert.Contains(t, violationInvariants(violations), "full_coverage")
}

func TestCheckSchedule_DetectsOvershoot(t *testing.T) {
	outcome, employees := validOutcome(t)
	for i := range outcome.Assignments {
		if outcome.Assignments[i].Shift == ShiftOff {
			outcome.Assignments[i].Shift = ShiftSplit
		}
	}

	violations := CheckSchedule(outcome, employees)

	names := violationInvariants(violations)
	assert.Contains(t, names, "assigned_within_target")
	assert.Contains(t, names, "summary_consistency")
}

func TestCheckSchedule_DetectsDayOffBreach(t *testing.T) {
	employees := []Employee{{
		ID: "e1", WeeklyHours: 16, Active: true,
		Rules: []PermanentRule{SpecificDaysOff{Days: []time.Weekday{time.Monday}}},
	}}
	outcome, err := Generate(GenerateInput{
		WeekStart: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		Employees: employees,
		Seed:      1,
	})
	require.NoError(t, err)
	require.Empty(t, outcome.Violations)

	// Force a shift onto the protected Monday.
	for i := range outcome.Assignments {
		if outcome.Assignments[i].Date.Weekday() == time.Monday {
			outcome.Assignments[i].Shift = ShiftMorning
		}
	}
	// Keep the summary consistent so only the rule breach fires.
	hours := 0
	for _, a := range outcome.Assignments {
		hours += a.Shift.Hours()
	}
	outcome.Summaries[0].AssignedHours = hours
	outcome.Summaries[0].TargetHours = hours

	violations := CheckSchedule(outcome, employees)

	assert.Equal(t, []string{"specific_days_off"}, violationInvariants(violations))
}

func TestCheckSchedule_DetectsAfternoonCapBreach(t *testing.T) {
	employees := []Employee{{
		ID: "e1", WeeklyHours: 40, Active: true,
		Rules: []PermanentRule{MaxAfternoonsPerWeek{Max: 1}},
	}}
	outcome := &Outcome{
		Week: WeekWindow{Start: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
	}
	for i, date := range outcome.Week.Dates() {
		shift := ShiftOff
		if i < 3 {
			shift = ShiftAfternoon
		}
		outcome.Assignments = append(outcome.Assignments, Assignment{EmployeeID: "e1", Date: date, Shift: shift})
	}
	outcome.Summaries = []EmployeeSummary{{EmployeeID: "e1", TargetHours: 12, AssignedHours: 12}}

	violations := CheckSchedule(outcome, employees)

	assert.Contains(t, violationInvariants(violations), "max_afternoons_per_week")
}
