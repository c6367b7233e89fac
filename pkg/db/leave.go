package db

import (
	"context"
	"fmt"
)

// GetLeaveRequests returns all leave requests; filtering by status and
// week overlap happens in the services layer.
func (db *DB) GetLeaveRequests(ctx context.Context) ([]LeaveRequest, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, employee_id, kind, status, dates, start_date, end_date FROM leave_requests`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []LeaveRequest
	for rows.Next() {
		var l LeaveRequest
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Kind, &l.Status,
			&l.Dates, &l.StartDate, &l.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// GetHolidays returns the store holidays for one establishment.
func (db *DB) GetHolidays(ctx context.Context, establishmentID string) ([]Holiday, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, establishment_id, date, kind, name FROM holidays
		 WHERE establishment_id = $1 ORDER BY date`, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.EstablishmentID, &h.Date, &h.Kind, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
