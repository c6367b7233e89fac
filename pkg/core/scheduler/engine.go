package scheduler

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"
)

// GenerateInput carries everything one scheduling run reads. The engine
// treats it as immutable; a run is a pure function of this input.
type GenerateInput struct {
	WeekStart       time.Time
	EstablishmentID string
	Employees       []Employee
	Holidays        []Holiday
	Leaves          []LeaveRequest

	// Seed drives the day-preference shuffles. Identical input and seed
	// reproduce the plan exactly; the caller picks a fresh seed when it
	// wants an alternative plan.
	Seed int64
}

// Outcome is the produced week plan plus its per-employee accounting and
// any invariant violations found on the result.
type Outcome struct {
	Week            WeekWindow
	EstablishmentID string
	Seed            int64

	// Assignments holds one entry per (active employee, date) pair, in
	// employee-ID then date order.
	Assignments []Assignment

	Summaries []EmployeeSummary

	// Violations is the invariant check on the produced plan. A correct
	// engine leaves it empty; it exists so a defect surfaces as data
	// instead of a silently wrong rota.
	Violations []Violation
}

// TotalShortfallHours sums the unmet hours across the week.
func (o *Outcome) TotalShortfallHours() int {
	total := 0
	for _, s := range o.Summaries {
		total += s.ShortfallHours
	}
	return total
}

// Generate runs the weekly shift assignment for every active employee and
// assembles the week plan.
//
// Each employee's pass is independent: hour target, availability
// resolution, day ranking with a per-employee deterministic generator, then
// greedy slot allocation. Unassigned cells are labelled holiday, leave or
// off so the plan covers every (employee, date) pair exactly once.
//
// Malformed input is rejected before any allocation; employees who cannot
// reach their target are reported through their summary, never as an error.
func Generate(input GenerateInput) (*Outcome, error) {
	week, err := NewWeekWindow(input.WeekStart)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	classes := ClassifyWeek(week, input.Holidays)

	// Employee order only affects output ordering, never the plan itself,
	// but a stable order keeps runs byte-comparable.
	employees := make([]Employee, 0, len(input.Employees))
	for _, emp := range input.Employees {
		if emp.Active {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	outcome := &Outcome{
		Week:            week,
		EstablishmentID: input.EstablishmentID,
		Seed:            input.Seed,
	}

	for _, emp := range employees {
		assignments, summary := runEmployeePass(emp, week, classes, input.Leaves, input.Seed)
		outcome.Assignments = append(outcome.Assignments, assignments...)
		outcome.Summaries = append(outcome.Summaries, summary)
	}

	outcome.Violations = CheckSchedule(outcome, employees)

	return outcome, nil
}

// runEmployeePass computes one employee's seven assignments and summary.
func runEmployeePass(emp Employee, week WeekWindow, classes [7]DayClass, leaves []LeaveRequest, seed int64) ([]Assignment, EmployeeSummary) {
	target := TargetHours(emp, week, classes, leaves)
	avail := ResolveAvailability(emp, week, classes, leaves)
	dates := week.Dates()

	candidates := make([]time.Time, 0, 7)
	masks := make(map[time.Time]ShiftMask, 7)
	for _, i := range avail.AvailableDayIndices() {
		candidates = append(candidates, dates[i])
		masks[dates[i]] = avail.Days[i].Mask
	}

	rng := rand.New(rand.NewSource(employeeSeed(seed, emp.ID)))
	ranked := RankDays(candidates, rng)
	if avail.MaxWorkDays > 0 && len(ranked) > avail.MaxWorkDays {
		ranked = ranked[:avail.MaxWorkDays]
	}

	plan := AllocateSlots(ranked, masks, target, avail.MaxAfternoons)

	assignments := make([]Assignment, 0, 7)
	for i, date := range dates {
		assignments = append(assignments, Assignment{
			EmployeeID: emp.ID,
			Date:       date,
			Shift:      cellShift(avail.Days[i], plan, date),
		})
	}

	return assignments, EmployeeSummary{
		EmployeeID:     emp.ID,
		TargetHours:    target,
		AssignedHours:  plan.AssignedHours,
		ShortfallHours: plan.ShortfallHours,
	}
}

// cellShift labels one (employee, date) cell. Working shifts win, then
// store holidays, then leave; weekly rest and rule exclusions read as off.
func cellShift(day DayAvailability, plan SlotPlan, date time.Time) ShiftType {
	if shift, ok := plan.Shifts[date]; ok {
		return shift
	}
	if day.Class == DayStoreHoliday {
		return ShiftHoliday
	}
	if day.OnLeave {
		return day.LeaveKind.ShiftType()
	}
	return ShiftOff
}

// employeeSeed derives an independent deterministic seed per employee, so
// passes stay reproducible in isolation and order-independent.
func employeeSeed(seed int64, employeeID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(employeeID))
	return seed ^ int64(h.Sum64())
}

func validateInput(input GenerateInput) error {
	seen := make(map[string]bool, len(input.Employees))
	for _, emp := range input.Employees {
		if emp.ID == "" {
			return &InvalidInputError{Reason: "employee with empty id"}
		}
		if seen[emp.ID] {
			return &InvalidInputError{Reason: fmt.Sprintf("duplicate employee id %q", emp.ID)}
		}
		seen[emp.ID] = true

		if emp.WeeklyHours < 0 {
			return &InvalidInputError{Reason: fmt.Sprintf("employee %s has negative weekly hours", emp.ID)}
		}
		if emp.WeeklyHours%SlotHours != 0 {
			return &InvalidInputError{Reason: fmt.Sprintf("employee %s weekly hours %d not half-day aligned", emp.ID, emp.WeeklyHours)}
		}
		for _, adj := range emp.Adjustments {
			if adj.WeeklyHours < 0 {
				return &InvalidInputError{Reason: fmt.Sprintf("employee %s has a negative hours adjustment", emp.ID)}
			}
		}
	}

	for _, leave := range input.Leaves {
		if !seen[leave.EmployeeID] {
			return &InvalidInputError{Reason: fmt.Sprintf("leave request references unknown employee %q", leave.EmployeeID)}
		}
	}

	return nil
}
