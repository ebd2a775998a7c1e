package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool using the DATABASE_URL environment variable
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// EnsureSchema creates the tables the platform needs if they do not exist.
// Kept deliberately simple: the deployment has no separate migration tooling.
func EnsureSchema(ctx context.Context) error {
	if pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS passages (
			id BIGSERIAL PRIMARY KEY,
			confession TEXT NOT NULL,
			reference TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_passages_confession ON passages (confession)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			date DATE NOT NULL,
			description TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			bank TEXT NOT NULL,
			source_file TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			confession TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_user ON chat_messages (user_id, confession, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
