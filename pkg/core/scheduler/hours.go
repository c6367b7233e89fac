package scheduler

import (
	"math"
	"time"
)

// maxLeaveDeductionDays caps how many leave days reduce one week's target.
const maxLeaveDeductionDays = 5

// TargetHours computes the hours an employee must work in the week.
//
// The base is the contracted weekly hours, replaced by the last temporary
// adjustment whose range contains the week start (replacement, never
// addition). A week with exactly one full store holiday reduces a 40-hour
// base to 32; the observed policy defines no reduction for other bases or
// holiday counts, so none is applied. Each approved leave day falling on a
// Monday-to-Friday date of the week deducts base/5 hours, capped at five
// days. The result is clamped to zero and rounded to the nearest multiple
// of 4, ties rounding up.
func TargetHours(emp Employee, week WeekWindow, classes [7]DayClass, leaves []LeaveRequest) int {
	base := emp.WeeklyHours
	for _, adj := range emp.Adjustments {
		if adj.Active(week) {
			base = adj.WeeklyHours
		}
	}

	target := float64(base)

	fullHolidayDays := 0
	for _, class := range classes {
		if class == DayStoreHoliday {
			fullHolidayDays++
		}
	}
	if fullHolidayDays == 1 && base == 40 {
		target = 32
	}

	leaveDays := countLeaveWeekdays(emp.ID, week, leaves)
	if leaveDays > maxLeaveDeductionDays {
		leaveDays = maxLeaveDeductionDays
	}
	target -= float64(leaveDays) * float64(base) / 5

	if target < 0 {
		target = 0
	}

	return roundToSlot(target)
}

// countLeaveWeekdays counts the Monday-to-Friday dates of the week covered
// by the employee's approved leave. Saturday and Sunday leave days do not
// reduce the target: the daily deduction rate is base/5 over the five
// weekdays.
func countLeaveWeekdays(employeeID string, week WeekWindow, leaves []LeaveRequest) int {
	count := 0
	for _, date := range week.Dates() {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		if onApprovedLeave(employeeID, date, leaves) {
			count++
		}
	}
	return count
}

func onApprovedLeave(employeeID string, date time.Time, leaves []LeaveRequest) bool {
	for _, leave := range leaves {
		if leave.EmployeeID != employeeID || leave.Status != LeaveApproved {
			continue
		}
		if leave.Covers(date) {
			return true
		}
	}
	return false
}

// roundToSlot rounds to the nearest non-negative multiple of SlotHours,
// ties up.
func roundToSlot(hours float64) int {
	rounded := int(math.Floor(hours/SlotHours+0.5)) * SlotHours
	if rounded < 0 {
		return 0
	}
	return rounded
}
