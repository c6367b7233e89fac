package db

import "time"

// Employee represents a database roster record
type Employee struct {
	ID          string
	Name        string
	WeeklyHours int
	Active      bool
}

// PermanentRule represents a database work-pattern rule record.
// Weekdays and Cycle use the text encodings documented on the parsers in
// the services package ("0" is Sunday through "6" is Saturday; cycle weeks
// are separated by "|").
type PermanentRule struct {
	ID              string
	EmployeeID      string
	Kind            string
	Weekdays        string
	MaxCount        int
	Cycle           string
	ReferenceMonday string
	CreatedAt       time.Time
}

// HoursAdjustment represents a database temporary hours override record
type HoursAdjustment struct {
	ID          string
	EmployeeID  string
	StartDate   string
	EndDate     string
	WeeklyHours int
	CreatedAt   time.Time
}

// LeaveRequest represents a database leave request record.
// Dates holds explicit comma-separated dates; when empty the inclusive
// StartDate/EndDate range applies.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Kind       string
	Status     string
	Dates      string
	StartDate  string
	EndDate    string
}

// Holiday represents a database store holiday record
type Holiday struct {
	ID              string
	EstablishmentID string
	Date            string
	Kind            string
	Name            string
}

// Schedule represents a generated week plan header record
type Schedule struct {
	ID              string
	EstablishmentID string
	WeekStart       string
	Seed            int64
	CreatedAt       time.Time
}

// ShiftAssignment represents one cell of a stored week plan
type ShiftAssignment struct {
	ID         string
	ScheduleID string
	EmployeeID string
	Date       string
	ShiftType  string
}

// EmployeeWeekSummary represents the stored per-employee hour accounting of
// a schedule; ShortfallHours feeds the hours-debt ledger kept elsewhere.
type EmployeeWeekSummary struct {
	ID             string
	ScheduleID     string
	EmployeeID     string
	TargetHours    int
	AssignedHours  int
	ShortfallHours int
}
