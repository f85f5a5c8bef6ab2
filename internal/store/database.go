package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/hoopiq/courtside/internal/snapshot"
)

// Database is the Postgres snapshot archive. Collectors that cannot write
// to a shared volume insert snapshot payloads here instead, and the engine
// reads the latest payload per name through DatabaseSource.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens a connection pool against the archive database.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// EnsureSchema creates the snapshot archive table when it does not exist.
func (db *Database) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			payload BYTEA NOT NULL,
			archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS snapshots_name_archived_at_idx
			ON snapshots (name, archived_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating snapshots schema: %w", err)
		}
	}
	return nil
}

// Archive stores a snapshot payload under its name. Each archive is a new
// row; Latest always serves the most recent one.
func (db *Database) Archive(ctx context.Context, name string, payload []byte) error {
	query := `INSERT INTO snapshots (name, payload) VALUES ($1, $2)`
	if _, err := db.conn.ExecContext(ctx, query, name, payload); err != nil {
		return fmt.Errorf("archiving snapshot %s: %w", name, err)
	}
	return nil
}

// Latest returns the newest payload archived under name, or
// snapshot.ErrNotFound when nothing has been archived yet.
func (db *Database) Latest(ctx context.Context, name string) ([]byte, error) {
	query := `
		SELECT payload FROM snapshots
		WHERE name = $1
		ORDER BY archived_at DESC, id DESC
		LIMIT 1
	`

	var payload []byte
	err := db.conn.QueryRowContext(ctx, query, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot %s: %w", name, err)
	}

	return payload, nil
}

// Prune drops archived payloads older than the retention window, keeping at
// least the newest row per name.
func (db *Database) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	query := `
		DELETE FROM snapshots s
		WHERE s.archived_at < NOW() - $1::interval
		  AND s.id <> (
			SELECT id FROM snapshots
			WHERE name = s.name
			ORDER BY archived_at DESC, id DESC
			LIMIT 1
		  )
	`

	res, err := db.conn.ExecContext(ctx, query, fmt.Sprintf("%d seconds", int(retention.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return res.RowsAffected()
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}

// DatabaseSource adapts the archive into a snapshot.Source so the loader can
// read snapshots from Postgres instead of the filesystem.
type DatabaseSource struct {
	db *Database
}

// NewDatabaseSource wraps db as a snapshot source.
func NewDatabaseSource(db *Database) *DatabaseSource {
	return &DatabaseSource{db: db}
}

// Open returns the latest archived payload for name.
func (s *DatabaseSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	payload, err := s.db.Latest(ctx, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}
