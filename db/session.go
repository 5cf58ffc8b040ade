// ABOUTME: Database session lifecycle for the trends services
// ABOUTME: Opens, migrates, and closes the shared SQL connection pool

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trends-shared/pkg/config"
)

// Session wraps the shared connection pool a service hands to its
// repositories. It owns the pool lifecycle: open at startup, Close at
// shutdown.
type Session struct {
	db *sql.DB
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Session, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	pool, err := sql.Open("sqlite3", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Session{db: pool}, nil
}

// DB exposes the underlying pool for repositories.
func (s *Session) DB() *sql.DB {
	return s.db
}

// Migrate executes the given DDL statements in order. Services call this at
// startup with the schemas of the tables they own.
func (s *Session) Migrate(ctx context.Context, statements ...string) error {
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Ping verifies the connection is still alive.
func (s *Session) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close disposes of the pool, closing all active connections.
func (s *Session) Close() error {
	return s.db.Close()
}
