package scheduler

import "fmt"

// Violation is one invariant breach found on a produced plan.
type Violation struct {
	EmployeeID  string
	Invariant   string
	Description string
}

// CheckSchedule verifies the produced plan against the engine's invariants
// and returns breaches as data. Checked per employee:
//
//   - exactly one assignment per date, all seven dates covered
//   - assigned hours never exceed the target, target half-day aligned
//   - fixed and rotating days off carry no working shift
//   - the afternoon budget holds across singles and splits
func CheckSchedule(outcome *Outcome, employees []Employee) []Violation {
	var violations []Violation

	byEmployee := make(map[string][]Assignment)
	for _, a := range outcome.Assignments {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	summaries := make(map[string]EmployeeSummary, len(outcome.Summaries))
	for _, s := range outcome.Summaries {
		summaries[s.EmployeeID] = s
	}

	for _, emp := range employees {
		assignments := byEmployee[emp.ID]
		violations = append(violations, checkCoverage(emp, outcome.Week, assignments)...)
		violations = append(violations, checkHours(emp, summaries[emp.ID], assignments)...)
		violations = append(violations, checkRules(emp, outcome.Week, assignments)...)
	}

	return violations
}

func checkCoverage(emp Employee, week WeekWindow, assignments []Assignment) []Violation {
	var violations []Violation

	perDate := make(map[string]int)
	for _, a := range assignments {
		perDate[a.Date.Format("2006-01-02")]++
	}

	for _, date := range week.Dates() {
		key := date.Format("2006-01-02")
		switch {
		case perDate[key] == 0:
			violations = append(violations, Violation{
				EmployeeID:  emp.ID,
				Invariant:   "full_coverage",
				Description: fmt.Sprintf("no assignment on %s", key),
			})
		case perDate[key] > 1:
			violations = append(violations, Violation{
				EmployeeID:  emp.ID,
				Invariant:   "one_shift_per_day",
				Description: fmt.Sprintf("%d assignments on %s", perDate[key], key),
			})
		}
	}

	return violations
}

func checkHours(emp Employee, summary EmployeeSummary, assignments []Assignment) []Violation {
	var violations []Violation

	if summary.TargetHours%SlotHours != 0 {
		violations = append(violations, Violation{
			EmployeeID:  emp.ID,
			Invariant:   "target_half_day_aligned",
			Description: fmt.Sprintf("target %dh is not a multiple of %d", summary.TargetHours, SlotHours),
		})
	}

	assigned := 0
	for _, a := range assignments {
		assigned += a.Shift.Hours()
	}
	if assigned != summary.AssignedHours {
		violations = append(violations, Violation{
			EmployeeID:  emp.ID,
			Invariant:   "summary_consistency",
			Description: fmt.Sprintf("plan carries %dh but summary reports %dh", assigned, summary.AssignedHours),
		})
	}
	if assigned > summary.TargetHours {
		violations = append(violations, Violation{
			EmployeeID:  emp.ID,
			Invariant:   "assigned_within_target",
			Description: fmt.Sprintf("assigned %dh exceeds target %dh", assigned, summary.TargetHours),
		})
	}

	return violations
}

func checkRules(emp Employee, week WeekWindow, assignments []Assignment) []Violation {
	var violations []Violation

	afternoonCap := -1
	for _, rule := range dedupeRules(emp.Rules) {
		switch r := rule.(type) {
		case SpecificDaysOff:
			for _, a := range assignments {
				if a.Shift.Slots() > 0 && r.Includes(a.Date.Weekday()) {
					violations = append(violations, Violation{
						EmployeeID:  emp.ID,
						Invariant:   "specific_days_off",
						Description: fmt.Sprintf("%s shift on fixed day off %s", a.Shift, a.Date.Format("2006-01-02")),
					})
				}
			}
		case RotatingDaysOff:
			for _, off := range r.DaysOffFor(week) {
				for _, a := range assignments {
					if a.Shift.Slots() > 0 && a.Date.Weekday() == off {
						violations = append(violations, Violation{
							EmployeeID:  emp.ID,
							Invariant:   "rotating_days_off",
							Description: fmt.Sprintf("%s shift on rotating day off %s", a.Shift, a.Date.Format("2006-01-02")),
						})
					}
				}
			}
		case MaxAfternoonsPerWeek:
			afternoonCap = r.Max
		}
	}

	if afternoonCap >= 0 {
		afternoons := 0
		for _, a := range assignments {
			if a.Shift == ShiftAfternoon || a.Shift == ShiftSplit {
				afternoons++
			}
		}
		if afternoons > afternoonCap {
			violations = append(violations, Violation{
				EmployeeID:  emp.ID,
				Invariant:   "max_afternoons_per_week",
				Description: fmt.Sprintf("%d afternoons assigned, cap is %d", afternoons, afternoonCap),
			})
		}
	}

	return violations
}
