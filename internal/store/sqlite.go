package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlite_migrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// defaultConnMaxLifetime mirrors the teacher's sqlite pool tuning for a
	// single-writer/multiple-reader workload.
	defaultConnMaxLifetime = 10 * time.Minute
)

// Config holds the arguments needed to open the snapshot store.
type Config struct {
	// DatabaseFileName is the full file path where the database file can
	// be found. An empty string opens an in-memory database, useful for
	// demos and tests.
	DatabaseFileName string
}

// Snapshot is the last ObservableState a demo actor published before it
// terminated, recorded by name.
type Snapshot struct {
	ActorName   string
	StateJSON   string
	Termination string
	RecordedAt  time.Time
}

// SnapshotStore persists the final ObservableState of actors that choose to
// record one, keyed by actor name. It is a consumer of the actor runtime,
// not a dependency of it: nothing in internal/actor imports this package.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore opens (creating if necessary) the sqlite database at
// cfg.DatabaseFileName and applies the single pending migration.
func NewSnapshotStore(cfg Config) (*SnapshotStore, error) {
	dsn := "file::memory:?cache=shared&_foreign_keys=on"
	if cfg.DatabaseFileName != "" {
		dir := filepath.Dir(cfg.DatabaseFileName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		dsn = fmt.Sprintf(
			"file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000",
			cfg.DatabaseFileName,
		)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	s := &SnapshotStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return s, nil
}

func (s *SnapshotStore) migrate() error {
	driver, err := sqlite_migrate.WithInstance(s.db, &sqlite_migrate.Config{})
	if err != nil {
		return fmt.Errorf("error creating sqlite migration driver: %w", err)
	}

	src, err := httpfs.New(http.FS(sqlSchemas), "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("migrations", src, "sqlite", driver)
	if err != nil {
		return err
	}

	log.InfoS(context.Background(), "applying snapshot store migrations")

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// RecordSnapshot upserts the latest observed state for the named actor.
func (s *SnapshotStore) RecordSnapshot(ctx context.Context, actorName,
	stateJSON, termination string) error {

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actor_snapshots (actor_name, state_json, termination, recorded_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(actor_name) DO UPDATE SET
			state_json = excluded.state_json,
			termination = excluded.termination,
			recorded_at = CURRENT_TIMESTAMP
	`, actorName, stateJSON, termination)
	if err != nil {
		return fmt.Errorf("recording snapshot for %q: %w", actorName, err)
	}

	log.DebugS(ctx, "recorded actor snapshot", "actor_name", actorName,
		"termination", termination)

	return nil
}

// LatestSnapshot returns the most recently recorded snapshot for the named
// actor. The second return value is false if no snapshot has been recorded.
func (s *SnapshotStore) LatestSnapshot(ctx context.Context, actorName string) (
	Snapshot, bool, error) {

	row := s.db.QueryRowContext(ctx, `
		SELECT actor_name, state_json, termination, recorded_at
		FROM actor_snapshots WHERE actor_name = ?
	`, actorName)

	var snap Snapshot
	err := row.Scan(
		&snap.ActorName, &snap.StateJSON, &snap.Termination, &snap.RecordedAt,
	)
	switch {
	case err == sql.ErrNoRows:
		return Snapshot{}, false, nil
	case err != nil:
		return Snapshot{}, false, fmt.Errorf(
			"querying snapshot for %q: %w", actorName, err)
	}

	return snap, true, nil
}

// Close closes the underlying database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
