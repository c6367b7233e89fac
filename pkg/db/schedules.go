package db

import (
	"context"
	"fmt"
)

// InsertSchedule stores a generated week plan atomically: the header, its
// shift assignments and its per-employee summaries commit together or not
// at all.
func (db *DB) InsertSchedule(ctx context.Context, schedule Schedule, assignments []ShiftAssignment, summaries []EmployeeWeekSummary) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO schedules (id, establishment_id, week_start, seed) VALUES ($1, $2, $3, $4)`,
		schedule.ID, schedule.EstablishmentID, schedule.WeekStart, schedule.Seed); err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	for _, a := range assignments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO shift_assignments (id, schedule_id, employee_id, date, shift_type)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.ID, a.ScheduleID, a.EmployeeID, a.Date, a.ShiftType); err != nil {
			return fmt.Errorf("failed to insert shift assignment: %w", err)
		}
	}

	for _, s := range summaries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO employee_week_summaries (id, schedule_id, employee_id, target_hours, assigned_hours, shortfall_hours)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, s.ScheduleID, s.EmployeeID, s.TargetHours, s.AssignedHours, s.ShortfallHours); err != nil {
			return fmt.Errorf("failed to insert week summary: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetSchedules returns the stored schedule headers for one establishment.
func (db *DB) GetSchedules(ctx context.Context, establishmentID string) ([]Schedule, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, establishment_id, week_start, seed, created_at FROM schedules
		 WHERE establishment_id = $1 ORDER BY week_start, created_at`, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.EstablishmentID, &s.WeekStart, &s.Seed, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// GetShiftAssignments returns the cells of one stored schedule.
func (db *DB) GetShiftAssignments(ctx context.Context, scheduleID string) ([]ShiftAssignment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, schedule_id, employee_id, date, shift_type FROM shift_assignments
		 WHERE schedule_id = $1 ORDER BY employee_id, date`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []ShiftAssignment
	for rows.Next() {
		var a ShiftAssignment
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.EmployeeID, &a.Date, &a.ShiftType); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// GetWeekSummaries returns the per-employee hour accounting of one stored
// schedule.
func (db *DB) GetWeekSummaries(ctx context.Context, scheduleID string) ([]EmployeeWeekSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, schedule_id, employee_id, target_hours, assigned_hours, shortfall_hours
		 FROM employee_week_summaries WHERE schedule_id = $1 ORDER BY employee_id`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query week summaries: %w", err)
	}
	defer rows.Close()

	var summaries []EmployeeWeekSummary
	for rows.Next() {
		var s EmployeeWeekSummary
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.EmployeeID, &s.TargetHours,
			&s.AssignedHours, &s.ShortfallHours); err != nil {
			return nil, fmt.Errorf("failed to scan week summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
