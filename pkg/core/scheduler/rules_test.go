package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupeRules_LastWriteWins(t *testing.T) {
	rules := []PermanentRule{
		SpecificDaysOff{Days: []time.Weekday{time.Monday}},
		MaxAfternoonsPerWeek{Max: 3},
		SpecificDaysOff{Days: []time.Weekday{time.Wednesday}},
	}

	deduped := dedupeRules(rules)

	assert.Len(t, deduped, 2)
	var daysOff SpecificDaysOff
	for _, rule := range deduped {
		if r, ok := rule.(SpecificDaysOff); ok {
			daysOff = r
		}
	}
	assert.Equal(t, []time.Weekday{time.Wednesday}, daysOff.Days)
}

func TestDuplicateRuleKinds(t *testing.T) {
	rules := []PermanentRule{
		MorningOnly{},
		SpecificDaysOff{Days: []time.Weekday{time.Monday}},
		SpecificDaysOff{Days: []time.Weekday{time.Tuesday}},
	}

	assert.Equal(t, []RuleKind{RuleSpecificDaysOff}, DuplicateRuleKinds(rules))
	assert.Empty(t, DuplicateRuleKinds([]PermanentRule{MorningOnly{}, ForceFullDays{}}))
}

func TestWeeksBetween(t *testing.T) {
	anchor := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // Monday

	assert.Equal(t, 0, weeksBetween(anchor, anchor))
	assert.Equal(t, 1, weeksBetween(anchor, anchor.AddDate(0, 0, 7)))
	assert.Equal(t, 4, weeksBetween(anchor, anchor.AddDate(0, 0, 28)))
	assert.Equal(t, -1, weeksBetween(anchor, anchor.AddDate(0, 0, -7)))
	assert.Equal(t, -2, weeksBetween(anchor, anchor.AddDate(0, 0, -14)))
}

func TestRotatingDaysOff_CycleAlternatesAcrossWeeks(t *testing.T) {
	anchor := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	rule := RotatingDaysOff{
		Cycle:           [][]time.Weekday{{time.Saturday}, {time.Monday}},
		ReferenceMonday: anchor,
	}

	// Weeks 0 and 2 use cycle index 0, weeks 1 and 3 use index 1.
	for offset, want := range map[int][]time.Weekday{
		0: {time.Saturday},
		1: {time.Monday},
		2: {time.Saturday},
		3: {time.Monday},
	} {
		week := mustWeek(t, anchor.AddDate(0, 0, 7*offset))
		assert.Equal(t, want, rule.DaysOffFor(week), "week offset %d", offset)
	}
}

func TestRotatingDaysOff_WeekBeforeAnchor(t *testing.T) {
	anchor := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	rule := RotatingDaysOff{
		Cycle:           [][]time.Weekday{{time.Saturday}, {time.Monday}},
		ReferenceMonday: anchor,
	}

	week := mustWeek(t, anchor.AddDate(0, 0, -7))
	assert.Equal(t, []time.Weekday{time.Monday}, rule.DaysOffFor(week))
}

func TestRotatingDaysOff_EmptyCycle(t *testing.T) {
	rule := RotatingDaysOff{ReferenceMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)}

	week := mustWeek(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, rule.DaysOffFor(week))
}
