package scheduler

import "time"

// SlotHours is the length of one half-day slot. Hour targets, shift lengths
// and shortfalls are all accounted in multiples of this unit.
const SlotHours = 4

// RestDay is the store's fixed weekly closing day.
const RestDay = time.Sunday

// ShiftType is the kind of entry occupying one (employee, date) cell of the
// week plan. Morning and Afternoon are single slots, Split is both slots on
// the same day. The remaining kinds carry no working hours.
type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftSplit     ShiftType = "split"
	ShiftOff       ShiftType = "off"
	ShiftHoliday   ShiftType = "holiday"
	ShiftVacation  ShiftType = "vacation"
	ShiftSickLeave ShiftType = "sick_leave"
)

// Slots returns how many half-day slots the shift occupies.
func (s ShiftType) Slots() int {
	switch s {
	case ShiftMorning, ShiftAfternoon:
		return 1
	case ShiftSplit:
		return 2
	default:
		return 0
	}
}

// Hours returns the working hours the shift represents.
func (s ShiftType) Hours() int {
	return s.Slots() * SlotHours
}

// DayClass is the calendar classification of one date in the target week.
type DayClass int

const (
	DayWorkable DayClass = iota
	DayStoreHoliday
	DayWeeklyRest
)

func (c DayClass) String() string {
	switch c {
	case DayStoreHoliday:
		return "store_holiday"
	case DayWeeklyRest:
		return "weekly_rest"
	default:
		return "workable"
	}
}

// ShiftMask is the set of workable shift types an employee may take on a
// given day. Rules compose by intersecting masks.
type ShiftMask uint8

const (
	MaskMorning ShiftMask = 1 << iota
	MaskAfternoon
	MaskSplit

	MaskAll  = MaskMorning | MaskAfternoon | MaskSplit
	MaskNone = ShiftMask(0)
)

// Allows reports whether every bit of the given mask is present.
func (m ShiftMask) Allows(want ShiftMask) bool {
	return m&want == want
}

// WeekWindow is the immutable 7-day span of a scheduling run, anchored at a
// Monday. Dates are normalized to midnight UTC.
type WeekWindow struct {
	Start time.Time
}

// NewWeekWindow builds a week window from the given Monday.
func NewWeekWindow(start time.Time) (WeekWindow, error) {
	day := normalizeDate(start)
	if day.Weekday() != time.Monday {
		return WeekWindow{}, &InvalidInputError{Reason: "week start must be a Monday, got " + day.Weekday().String()}
	}
	return WeekWindow{Start: day}, nil
}

// Dates returns the 7 consecutive dates the window spans, Monday first.
func (w WeekWindow) Dates() [7]time.Time {
	var dates [7]time.Time
	for i := range dates {
		dates[i] = w.Start.AddDate(0, 0, i)
	}
	return dates
}

// End returns the last date of the window (Sunday).
func (w WeekWindow) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// Contains reports whether the date falls inside the window.
func (w WeekWindow) Contains(date time.Time) bool {
	d := normalizeDate(date)
	return !d.Before(w.Start) && !d.After(w.End())
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return normalizeDate(a).Equal(normalizeDate(b))
}

// Employee is one roster member as seen by the engine. The engine never
// mutates it; rules and adjustments are owned by external HR workflows.
type Employee struct {
	ID     string
	Name   string
	Active bool

	// WeeklyHours is the contracted base, half-day aligned (multiple of 4).
	WeeklyHours int

	Rules       []PermanentRule
	Adjustments []TempHoursAdjustment
}

// TempHoursAdjustment overrides the contracted weekly hours while the
// inclusive [Start, End] range contains the week start.
type TempHoursAdjustment struct {
	Start       time.Time
	End         time.Time
	WeeklyHours int
}

// Active reports whether the adjustment applies to the given week.
func (a TempHoursAdjustment) Active(week WeekWindow) bool {
	s, e := normalizeDate(a.Start), normalizeDate(a.End)
	return !week.Start.Before(s) && !week.Start.After(e)
}

// LeaveKind classifies a leave request.
type LeaveKind string

const (
	LeaveVacation            LeaveKind = "vacation"
	LeaveSickLeave           LeaveKind = "sick_leave"
	LeaveMaternityPaternity  LeaveKind = "maternity_paternity"
)

// ShiftType returns the plan entry used for a day absorbed by this leave.
// Maternity/paternity has no dedicated label in the plan vocabulary and is
// materialized as sick leave.
func (k LeaveKind) ShiftType() ShiftType {
	if k == LeaveVacation {
		return ShiftVacation
	}
	return ShiftSickLeave
}

// LeaveStatus is the approval state of a leave request. Only approved leave
// affects scheduling.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is an employee absence, either as an explicit date list or an
// inclusive [Start, End] range.
type LeaveRequest struct {
	EmployeeID string
	Kind       LeaveKind
	Status     LeaveStatus

	Dates []time.Time
	Start time.Time
	End   time.Time
}

// Covers reports whether the request covers the given date. An explicit date
// list takes precedence over the range.
func (l LeaveRequest) Covers(date time.Time) bool {
	if len(l.Dates) > 0 {
		for _, d := range l.Dates {
			if sameDate(d, date) {
				return true
			}
		}
		return false
	}
	if l.Start.IsZero() || l.End.IsZero() {
		return false
	}
	d := normalizeDate(date)
	return !d.Before(normalizeDate(l.Start)) && !d.After(normalizeDate(l.End))
}

// HolidayKind distinguishes full store closures from partial ones.
type HolidayKind string

const (
	HolidayFull    HolidayKind = "full"
	HolidayPartial HolidayKind = "partial"
)

// Holiday is a store holiday on a concrete date. Only full holidays close
// the store; partial ones pass through the calendar unchanged.
type Holiday struct {
	Date time.Time
	Kind HolidayKind
	Name string
}

// Assignment is one cell of the produced week plan.
type Assignment struct {
	EmployeeID string
	Date       time.Time
	Shift      ShiftType
}

// EmployeeSummary reports how an employee's hour target was met.
type EmployeeSummary struct {
	EmployeeID     string
	TargetHours    int
	AssignedHours  int
	ShortfallHours int
}

// InvalidInputError is the fatal rejection for malformed input. Constraint
// shortfalls are never errors; they surface in the employee summaries.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
