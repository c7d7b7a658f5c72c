// Package db provides PostgreSQL persistence for audit runs and their
// fairness artifacts.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateAuditRun records the start of an audit run and returns its id.
func (db *DB) CreateAuditRun(ctx context.Context, ranker, query string, poolSize int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO audit_runs (ranker, query, pool_size, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		ranker, query, poolSize,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create audit run: %w", err)
	}
	return id, nil
}

// CompleteAuditRun marks an audit run as finished with the given status
// ('passed', 'failed', or 'error').
func (db *DB) CompleteAuditRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE audit_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete audit run: %w", err)
	}
	return nil
}
