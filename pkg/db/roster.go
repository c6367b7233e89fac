package db

import (
	"context"
	"fmt"
)

// GetEmployees returns the full roster.
func (db *DB) GetEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, weekly_hours, active FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.WeeklyHours, &e.Active); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetPermanentRules returns all work-pattern rules ordered by creation
// time, so the last record of a kind per employee is the authoritative one.
func (db *DB) GetPermanentRules(ctx context.Context) ([]PermanentRule, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, employee_id, kind, weekdays, max_count, cycle, reference_monday, created_at
		 FROM permanent_rules ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query permanent rules: %w", err)
	}
	defer rows.Close()

	var rules []PermanentRule
	for rows.Next() {
		var r PermanentRule
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.Kind, &r.Weekdays, &r.MaxCount,
			&r.Cycle, &r.ReferenceMonday, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permanent rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// GetHoursAdjustments returns all temporary hour overrides ordered by
// creation time.
func (db *DB) GetHoursAdjustments(ctx context.Context) ([]HoursAdjustment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, employee_id, start_date, end_date, weekly_hours, created_at
		 FROM hours_adjustments ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hours adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []HoursAdjustment
	for rows.Next() {
		var a HoursAdjustment
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.StartDate, &a.EndDate,
			&a.WeeklyHours, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hours adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}
