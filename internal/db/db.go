// Package db stores analysis history in PostgreSQL.
package db

import (
	"context"
	"fmt"

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

	// Verify connection
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

// EnsureSchema creates the analyses table if it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS analyses (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		filename      TEXT NOT NULL,
		overall_score NUMERIC(5,1) NOT NULL,
		keyword_score NUMERIC(5,1) NOT NULL,
		tech_score    NUMERIC(5,1) NOT NULL,
		report        JSONB NOT NULL,
		resume_hash   TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}
	return nil
}
