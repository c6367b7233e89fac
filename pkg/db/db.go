// Package db provides the Postgres store for rosters, leave, holidays and
// generated schedules. The scheduling engine never touches it; services
// depend on narrow interfaces satisfied by *DB so tests can run on mocks.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB provides database operations backed by a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// NewDB connects to the database and verifies the connection.
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
