package scheduler

import "time"

// DayAvailability is the resolved status of one date for one employee.
type DayAvailability struct {
	Available bool

	// Mask holds the shift types the employee may work, meaningful only
	// while Available.
	Mask ShiftMask

	// Class is the calendar classification of the date.
	Class DayClass

	// OnLeave is set when approved leave removed the day, together with the
	// leave kind so the assembler can label the cell.
	OnLeave   bool
	LeaveKind LeaveKind
}

// Availability is the week-level availability picture for one employee:
// per-day statuses plus the running budgets the slot allocator consumes.
type Availability struct {
	Days [7]DayAvailability

	// MaxWorkDays caps how many ranked days are offered to the allocator.
	// Zero means no cap.
	MaxWorkDays int

	// MaxAfternoons caps afternoons (single or inside a split) per week.
	// Negative means no cap.
	MaxAfternoons int
}

// AvailableDayIndices returns the indices (0 = Monday) of the available
// days, in week order.
func (a Availability) AvailableDayIndices() []int {
	var indices []int
	for i, day := range a.Days {
		if day.Available {
			indices = append(indices, i)
		}
	}
	return indices
}

// ResolveAvailability intersects the calendar classification with the
// employee's approved leave and permanent rules to produce the per-day
// allow/deny map and shift-type masks.
//
// Rules compose by intersection. Duplicate rules of one kind resolve
// last-write-wins before resolution. A day whose mask empties (for example
// ForceFullDays combined with MorningOnly) drops out of the available list;
// that is a constraint shortfall surfaced later, not an error.
func ResolveAvailability(emp Employee, week WeekWindow, classes [7]DayClass, leaves []LeaveRequest) Availability {
	avail := Availability{
		MaxAfternoons: -1,
	}

	rules := dedupeRules(emp.Rules)

	mask := MaskAll
	ruledOut := make(map[int]bool)

	for _, rule := range rules {
		switch r := rule.(type) {
		case MorningOnly:
			mask &= MaskMorning
		case AfternoonOnly:
			mask &= MaskAfternoon
		case EarlyMorningShift:
			mask &= MaskMorning
			avail.MaxWorkDays = EarlyMorningMaxDays
		case ForceFullDays:
			mask &= MaskSplit
		case SpecificDaysOff:
			for i, date := range week.Dates() {
				if r.Includes(date.Weekday()) {
					ruledOut[i] = true
				}
			}
		case RotatingDaysOff:
			for _, off := range r.DaysOffFor(week) {
				for i, date := range week.Dates() {
					if date.Weekday() == off {
						ruledOut[i] = true
					}
				}
			}
		case MaxAfternoonsPerWeek:
			avail.MaxAfternoons = r.Max
		}
	}

	for i, date := range week.Dates() {
		day := DayAvailability{Class: classes[i]}

		leaveKind, onLeave := approvedLeaveKind(emp.ID, date, leaves)
		day.OnLeave = onLeave
		day.LeaveKind = leaveKind

		switch {
		case classes[i] != DayWorkable:
		case onLeave:
		case ruledOut[i]:
		case mask == MaskNone:
		default:
			day.Available = true
			day.Mask = mask
		}

		avail.Days[i] = day
	}

	return avail
}

func approvedLeaveKind(employeeID string, date time.Time, leaves []LeaveRequest) (LeaveKind, bool) {
	for _, leave := range leaves {
		if leave.EmployeeID != employeeID || leave.Status != LeaveApproved {
			continue
		}
		if leave.Covers(date) {
			return leave.Kind, true
		}
	}
	return "", false
}
