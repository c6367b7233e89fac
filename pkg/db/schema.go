package db

import (
	"context"
	"fmt"
)

// schemaStatements create the tables the store relies on. Kept idempotent
// so initdb can run against an existing database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		weekly_hours INT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS permanent_rules (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		kind TEXT NOT NULL,
		weekdays TEXT NOT NULL DEFAULT '',
		max_count INT NOT NULL DEFAULT 0,
		cycle TEXT NOT NULL DEFAULT '',
		reference_monday TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS hours_adjustments (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		weekly_hours INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		dates TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id UUID PRIMARY KEY,
		establishment_id TEXT NOT NULL,
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id UUID PRIMARY KEY,
		establishment_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		seed BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS shift_assignments (
		id UUID PRIMARY KEY,
		schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		shift_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employee_week_summaries (
		id UUID PRIMARY KEY,
		schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL,
		target_hours INT NOT NULL,
		assigned_hours INT NOT NULL,
		shortfall_hours INT NOT NULL
	)`,
}

// Migrate creates any missing tables.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}
