package persistence

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mcdev12/mockdraft/go/internal/sqlutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the snapshot in a local SQLite file, one row per key
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite migrates the database at path and opens it
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := migrateUp(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure session store: %w", err)
	}

	log.Info().Str("path", path).Msg("session store opened")
	return &SQLiteStore{db: db}, nil
}

func migrateUp(path string) error {
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationsDir, ".")
	if err != nil {
		return fmt.Errorf("failed to create source driver: %w", err)
	}

	normalizedPath := filepath.ToSlash(path)
	if filepath.IsAbs(path) && normalizedPath[0] != '/' {
		normalizedPath = "/" + normalizedPath
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, "sqlite://"+normalizedPath)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// stateQueries binds the key/value statements to one transaction
type stateQueries struct {
	tx *sql.Tx
}

func newStateQueries(tx *sql.Tx) *stateQueries {
	return &stateQueries{tx: tx}
}

func (q *stateQueries) put(ctx context.Context, key, value string) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

func (q *stateQueries) deleteAll(ctx context.Context) error {
	_, err := q.tx.ExecContext(ctx, `DELETE FROM session_state`)
	return err
}

// Save writes all four keys in one transaction
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	values, err := Encode(snap)
	if err != nil {
		return err
	}
	err = sqlutil.Run(ctx, s.db, newStateQueries, func(q *stateQueries) error {
		for _, k := range Keys {
			if err := q.put(ctx, k, values[k]); err != nil {
				return fmt.Errorf("failed to write %s: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return Decode(values)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := sqlutil.Run(ctx, s.db, newStateQueries, func(q *stateQueries) error {
		return q.deleteAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Set writes one raw value, bypassing encoding
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return sqlutil.Run(ctx, s.db, newStateQueries, func(q *stateQueries) error {
		return q.put(ctx, key, value)
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
