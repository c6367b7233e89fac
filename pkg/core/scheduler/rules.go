package scheduler

import "time"

// RuleKind identifies one variant of the permanent work-pattern rules.
type RuleKind string

const (
	RuleMorningOnly          RuleKind = "morning_only"
	RuleAfternoonOnly        RuleKind = "afternoon_only"
	RuleSpecificDaysOff      RuleKind = "specific_days_off"
	RuleMaxAfternoonsPerWeek RuleKind = "max_afternoons_per_week"
	RuleForceFullDays        RuleKind = "force_full_days"
	RuleEarlyMorningShift    RuleKind = "early_morning_shift"
	RuleRotatingDaysOff      RuleKind = "rotating_days_off"
)

// PermanentRule is a closed set of work-pattern restrictions. The sealed
// marker keeps the set exhaustive: the availability resolver type-switches
// over every variant and a new one cannot be added without handling it there.
type PermanentRule interface {
	Kind() RuleKind
	sealedRule()
}

// MorningOnly restricts the employee to morning slots.
type MorningOnly struct{}

func (MorningOnly) Kind() RuleKind { return RuleMorningOnly }
func (MorningOnly) sealedRule()    {}

// AfternoonOnly restricts the employee to afternoon slots.
type AfternoonOnly struct{}

func (AfternoonOnly) Kind() RuleKind { return RuleAfternoonOnly }
func (AfternoonOnly) sealedRule()    {}

// SpecificDaysOff marks fixed weekdays as always off, regardless of the
// calendar.
type SpecificDaysOff struct {
	Days []time.Weekday
}

func (SpecificDaysOff) Kind() RuleKind { return RuleSpecificDaysOff }
func (SpecificDaysOff) sealedRule()    {}

// Includes reports whether the weekday is one of the fixed days off.
func (r SpecificDaysOff) Includes(day time.Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// MaxAfternoonsPerWeek caps the afternoons (single or inside a split) the
// employee works per week. It is a running budget consumed by the slot
// allocator rather than a per-day mask.
type MaxAfternoonsPerWeek struct {
	Max int
}

func (MaxAfternoonsPerWeek) Kind() RuleKind { return RuleMaxAfternoonsPerWeek }
func (MaxAfternoonsPerWeek) sealedRule()    {}

// ForceFullDays permits only split shifts; days that cannot take a split are
// excluded from the employee's available-day list entirely.
type ForceFullDays struct{}

func (ForceFullDays) Kind() RuleKind { return RuleForceFullDays }
func (ForceFullDays) sealedRule()    {}

// EarlyMorningShift fixes the employee to the early morning block and caps
// the week to the first four available days in preference order.
type EarlyMorningShift struct{}

func (EarlyMorningShift) Kind() RuleKind { return RuleEarlyMorningShift }
func (EarlyMorningShift) sealedRule()    {}

// EarlyMorningMaxDays is the weekly day cap imposed by EarlyMorningShift.
const EarlyMorningMaxDays = 4

// RotatingDaysOff is a repeating multi-week rest-day pattern anchored at a
// reference Monday. Week N of the cycle uses Cycle[N mod len(Cycle)].
type RotatingDaysOff struct {
	Cycle           [][]time.Weekday
	ReferenceMonday time.Time
}

func (RotatingDaysOff) Kind() RuleKind { return RuleRotatingDaysOff }
func (RotatingDaysOff) sealedRule()    {}

// DaysOffFor returns the rest days the cycle imposes on the given week.
func (r RotatingDaysOff) DaysOffFor(week WeekWindow) []time.Weekday {
	if len(r.Cycle) == 0 {
		return nil
	}
	idx := weeksBetween(r.ReferenceMonday, week.Start) % len(r.Cycle)
	if idx < 0 {
		idx += len(r.Cycle)
	}
	return r.Cycle[idx]
}

// weeksBetween counts whole weeks from ref to start; negative when start
// precedes ref.
func weeksBetween(ref, start time.Time) int {
	days := int(normalizeDate(start).Sub(normalizeDate(ref)).Hours() / 24)
	if days < 0 {
		// Floor division so week boundaries stay aligned before the anchor.
		return -((-days + 6) / 7)
	}
	return days / 7
}

// dedupeRules keeps the last rule of each kind. Duplicate kinds are an
// external-data defect resolved by last-write-wins; callers are expected to
// warn about them before handing rules to the engine.
func dedupeRules(rules []PermanentRule) []PermanentRule {
	lastByKind := make(map[RuleKind]int, len(rules))
	for i, rule := range rules {
		lastByKind[rule.Kind()] = i
	}

	deduped := make([]PermanentRule, 0, len(lastByKind))
	for i, rule := range rules {
		if lastByKind[rule.Kind()] == i {
			deduped = append(deduped, rule)
		}
	}
	return deduped
}

// DuplicateRuleKinds returns the kinds that appear more than once, for the
// caller to log before generation.
func DuplicateRuleKinds(rules []PermanentRule) []RuleKind {
	seen := make(map[RuleKind]int, len(rules))
	for _, rule := range rules {
		seen[rule.Kind()]++
	}

	var dupes []RuleKind
	for _, rule := range rules {
		if seen[rule.Kind()] > 1 {
			dupes = append(dupes, rule.Kind())
			seen[rule.Kind()] = 0
		}
	}
	return dupes
}
