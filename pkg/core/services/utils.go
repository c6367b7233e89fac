package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/lmorales/storeshift/internal/config"
	"github.com/lmorales/storeshift/pkg/core/scheduler"
	"github.com/lmorales/storeshift/pkg/db"
)

const dateLayout = "2006-01-02"

// parseWeekStart parses a week start date; an empty value means the next
// Monday from now.
func parseWeekStart(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return nextMonday(now), nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start date %q: %w", value, err)
	}
	return date, nil
}

// nextMonday returns the next Monday strictly after the given date.
func nextMonday(from time.Time) time.Time {
	// Normalize to start of day to avoid time-of-day issues
	normalized := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	daysUntilMonday := (int(time.Monday) - int(normalized.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	return normalized.AddDate(0, 0, daysUntilMonday)
}

// findLatestSchedule finds the schedule with the most recent week start,
// preferring the most recently created on ties.
func findLatestSchedule(schedules []db.Schedule) *db.Schedule {
	if len(schedules) == 0 {
		return nil
	}

	latest := &schedules[0]
	for i := 1; i < len(schedules); i++ {
		current := &schedules[i]
		if current.WeekStart > latest.WeekStart {
			latest = current
			continue
		}
		if current.WeekStart == latest.WeekStart && current.CreatedAt.After(latest.CreatedAt) {
			latest = current
		}
	}

	return latest
}

// filterActiveEmployees filters the roster to active members.
func filterActiveEmployees(employees []db.Employee) []db.Employee {
	active := make([]db.Employee, 0)
	for _, emp := range employees {
		if emp.Active {
			active = append(active, emp)
		}
	}
	return active
}

// convertEmployees builds engine employees from roster records, attaching
// each one's rules and adjustments.
func convertEmployees(records []db.Employee, rules map[string][]scheduler.PermanentRule, adjustments map[string][]scheduler.TempHoursAdjustment) []scheduler.Employee {
	employees := make([]scheduler.Employee, len(records))
	for i, rec := range records {
		employees[i] = scheduler.Employee{
			ID:          rec.ID,
			Name:        rec.Name,
			WeeklyHours: rec.WeeklyHours,
			Active:      rec.Active,
			Rules:       rules[rec.ID],
			Adjustments: adjustments[rec.ID],
		}
	}
	return employees
}

// convertRule maps one rule record to its engine variant. Records are
// expected in creation order so last-write-wins resolution downstream sees
// the newest rule last.
func convertRule(rec db.PermanentRule) (scheduler.PermanentRule, error) {
	switch scheduler.RuleKind(rec.Kind) {
	case scheduler.RuleMorningOnly:
		return scheduler.MorningOnly{}, nil
	case scheduler.RuleAfternoonOnly:
		return scheduler.AfternoonOnly{}, nil
	case scheduler.RuleForceFullDays:
		return scheduler.ForceFullDays{}, nil
	case scheduler.RuleEarlyMorningShift:
		return scheduler.EarlyMorningShift{}, nil
	case scheduler.RuleMaxAfternoonsPerWeek:
		if rec.MaxCount < 0 {
			return nil, fmt.Errorf("rule %s: negative afternoon cap %d", rec.ID, rec.MaxCount)
		}
		return scheduler.MaxAfternoonsPerWeek{Max: rec.MaxCount}, nil
	case scheduler.RuleSpecificDaysOff:
		days, err := parseWeekdays(rec.Weekdays)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rec.ID, err)
		}
		return scheduler.SpecificDaysOff{Days: days}, nil
	case scheduler.RuleRotatingDaysOff:
		cycle, err := parseWeekdayCycle(rec.Cycle)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rec.ID, err)
		}
		anchor, err := time.Parse(dateLayout, rec.ReferenceMonday)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid reference monday %q: %w", rec.ID, rec.ReferenceMonday, err)
		}
		return scheduler.RotatingDaysOff{Cycle: cycle, ReferenceMonday: anchor}, nil
	default:
		return nil, fmt.Errorf("rule %s: unknown kind %q", rec.ID, rec.Kind)
	}
}

// parseWeekdays parses a comma-separated weekday list ("1,3" is Monday and
// Wednesday; 0 is Sunday, matching time.Weekday).
func parseWeekdays(value string) ([]time.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("empty weekday list")
	}

	parts := strings.Split(value, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

// parseWeekdayCycle parses a rotating cycle encoding: weeks separated by
// "|", weekdays within a week comma-separated ("6|1" alternates Saturday
// off and Monday off).
func parseWeekdayCycle(value string) ([][]time.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("empty rotation cycle")
	}

	weeks := strings.Split(value, "|")
	cycle := make([][]time.Weekday, 0, len(weeks))
	for _, week := range weeks {
		if strings.TrimSpace(week) == "" {
			cycle = append(cycle, nil)
			continue
		}
		days, err := parseWeekdays(week)
		if err != nil {
			return nil, err
		}
		cycle = append(cycle, days)
	}
	return cycle, nil
}

// convertAdjustment maps one hours override record to the engine type.
func convertAdjustment(rec db.HoursAdjustment) (scheduler.TempHoursAdjustment, error) {
	start, err := time.Parse(dateLayout, rec.StartDate)
	if err != nil {
		return scheduler.TempHoursAdjustment{}, fmt.Errorf("adjustment %s: invalid start date: %w", rec.ID, err)
	}
	end, err := time.Parse(dateLayout, rec.EndDate)
	if err != nil {
		return scheduler.TempHoursAdjustment{}, fmt.Errorf("adjustment %s: invalid end date: %w", rec.ID, err)
	}
	return scheduler.TempHoursAdjustment{Start: start, End: end, WeeklyHours: rec.WeeklyHours}, nil
}

// convertLeave maps one leave record to the engine type.
func convertLeave(rec db.LeaveRequest) (scheduler.LeaveRequest, error) {
	leave := scheduler.LeaveRequest{
		EmployeeID: rec.EmployeeID,
		Kind:       scheduler.LeaveKind(rec.Kind),
		Status:     scheduler.LeaveStatus(rec.Status),
	}

	if strings.TrimSpace(rec.Dates) != "" {
		for _, part := range strings.Split(rec.Dates, ",") {
			date, err := time.Parse(dateLayout, strings.TrimSpace(part))
			if err != nil {
				return scheduler.LeaveRequest{}, fmt.Errorf("leave %s: invalid date %q: %w", rec.ID, part, err)
			}
			leave.Dates = append(leave.Dates, date)
		}
		return leave, nil
	}

	start, err := time.Parse(dateLayout, rec.StartDate)
	if err != nil {
		return scheduler.LeaveRequest{}, fmt.Errorf("leave %s: invalid start date: %w", rec.ID, err)
	}
	end, err := time.Parse(dateLayout, rec.EndDate)
	if err != nil {
		return scheduler.LeaveRequest{}, fmt.Errorf("leave %s: invalid end date: %w", rec.ID, err)
	}
	leave.Start = start
	leave.End = end
	return leave, nil
}

// leaveOverlapsWeek reports whether the leave touches any date of the week.
func leaveOverlapsWeek(leave scheduler.LeaveRequest, week scheduler.WeekWindow) bool {
	for _, date := range week.Dates() {
		if leave.Covers(date) {
			return true
		}
	}
	return false
}

// convertHolidays maps holiday records into engine holidays.
func convertHolidays(records []db.Holiday) ([]scheduler.Holiday, error) {
	holidays := make([]scheduler.Holiday, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(dateLayout, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: invalid date %q: %w", rec.ID, rec.Date, err)
		}
		holidays = append(holidays, scheduler.Holiday{
			Date: date,
			Kind: scheduler.HolidayKind(rec.Kind),
			Name: rec.Name,
		})
	}
	return holidays, nil
}

// expandClosures materializes the config's recurring store closures into
// concrete holidays for the target week.
func expandClosures(closures []config.StoreClosure, week scheduler.WeekWindow) ([]scheduler.Holiday, error) {
	var holidays []scheduler.Holiday

	for i, closure := range closures {
		rule, err := rrule.StrToRRule(closure.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for closure %d: %w", i, err)
		}

		// Anchor the rule before the week so occurrences inside it appear.
		rule.DTStart(week.Start.AddDate(-1, 0, 0))

		kind := scheduler.HolidayFull
		if closure.Partial {
			kind = scheduler.HolidayPartial
		}

		for _, occurrence := range rule.Between(week.Start, week.End().AddDate(0, 0, 1), true) {
			date := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, time.UTC)
			if !week.Contains(date) {
				continue
			}
			holidays = append(holidays, scheduler.Holiday{Date: date, Kind: kind, Name: closure.Name})
		}
	}

	return holidays, nil
}
