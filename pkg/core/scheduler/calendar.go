package scheduler

import "time"

// ClassifyWeek classifies each date of the week as store holiday, weekly
// rest or workable. A date is a store holiday iff a full holiday falls on
// it; otherwise the fixed rest day closes the store; everything else is
// workable. Partial holidays do not close the store on their own.
func ClassifyWeek(week WeekWindow, holidays []Holiday) [7]DayClass {
	var classes [7]DayClass

	for i, date := range week.Dates() {
		switch {
		case isFullHoliday(date, holidays):
			classes[i] = DayStoreHoliday
		case date.Weekday() == RestDay:
			classes[i] = DayWeeklyRest
		default:
			classes[i] = DayWorkable
		}
	}

	return classes
}

func isFullHoliday(date time.Time, holidays []Holiday) bool {
	for _, h := range holidays {
		if h.Kind == HolidayFull && sameDate(h.Date, date) {
			return true
		}
	}
	return false
}
