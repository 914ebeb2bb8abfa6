// Package history keeps named JSON snapshots in SQLite so a live response
// can be compared against an earlier one.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store is a models.SnapshotStore backed by a SQLite database.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

var _ models.SnapshotStore = (*Store)(nil)

// Open opens (creating if needed) the database at dataSourceName and
// ensures the schema exists. ":memory:" opens a private in-memory database.
func Open(dataSourceName string, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "SnapshotStore").Logger()
	logger.Debug().Str("db_path", dataSourceName).Msg("Opening snapshot database")

	if dataSourceName != ":memory:" {
		if err := common.EnsureDir(filepath.Dir(dataSourceName)); err != nil {
			return nil, common.WrapError(err, "failed to prepare snapshot database")
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases alive across calls.
	dbInstance.SetMaxOpenConns(1)

	s := &Store{
		db:     dbInstance,
		logger: logger,
		now:    time.Now,
	}

	if err := s.initSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots (name, seq);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// Save stores body under name. body must be a JSON document; it is stored
// in compact form so equal documents produce equal rows.
func (s *Store) Save(name, source, body string) (*models.Snapshot, error) {
	v, err := jsonvalue.Parse([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("snapshot %q is not valid JSON: %w", name, err)
	}
	return s.SaveValue(name, source, v)
}

// SaveValue stores an already parsed document under name.
func (s *Store) SaveValue(name, source string, v jsonvalue.Value) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		Body:      jsonvalue.Compact(v),
		CreatedAt: s.now().UTC(),
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	query := `INSERT INTO snapshots (id, name, source, body, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, snap.ID, snap.Name, snap.Source, snap.Body, snap.CreatedAt.UnixNano()); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("Failed to insert snapshot")
		return nil, fmt.Errorf("failed to insert snapshot %q: %w", name, err)
	}

	s.logger.Info().Str("id", snap.ID).Str("name", name).Int("bytes", len(snap.Body)).Msg("Saved snapshot")
	return snap, nil
}

// Latest returns the most recently saved snapshot named name.
func (s *Store) Latest(name string) (*models.Snapshot, error) {
	query := `SELECT id, name, source, body, created_at FROM snapshots WHERE name = ? ORDER BY seq DESC LIMIT 1`
	snap, err := scanSnapshot(s.db.QueryRow(query, name))
	if err != nil {
		return nil, s.wrapLookupError(err, "named "+name)
	}
	return snap, nil
}

// Get returns the snapshot with the given ID.
func (s *Store) Get(id string) (*models.Snapshot, error) {
	query := `SELECT id, name, source, body, created_at FROM snapshots WHERE id = ?`
	snap, err := scanSnapshot(s.db.QueryRow(query, id))
	if err != nil {
		return nil, s.wrapLookupError(err, id)
	}
	return snap, nil
}

// List returns snapshots newest first. An empty name lists every snapshot;
// limit <= 0 means no limit.
func (s *Store) List(name string, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}

	var rows *sql.Rows
	var err error
	if name == "" {
		rows, err = s.db.Query(`SELECT id, name, source, body, created_at FROM snapshots ORDER BY seq DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(`SELECT id, name, source, body, created_at FROM snapshots WHERE name = ? ORDER BY seq DESC LIMIT ?`, name, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot row: %w", err)
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot with the given ID.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, models.ErrRecordNotFound)
	}
	s.logger.Info().Str("id", id).Msg("Deleted snapshot")
	return nil
}

// Value parses the stored body of snap.
func Value(snap *models.Snapshot) (jsonvalue.Value, error) {
	v, err := jsonvalue.Parse([]byte(snap.Body))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s has a corrupt body: %w", snap.ID, err)
	}
	return v, nil
}

func (s *Store) wrapLookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("snapshot %s: %w", what, models.ErrRecordNotFound)
	}
	s.logger.Error().Err(err).Str("snapshot", what).Msg("Failed to query snapshot")
	return fmt.Errorf("failed to query snapshot %s: %w", what, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*models.Snapshot, error) {
	var snap models.Snapshot
	var createdAt int64
	if err := row.Scan(&snap.ID, &snap.Name, &snap.Source, &snap.Body, &createdAt); err != nil {
		return nil, err
	}
	snap.CreatedAt = time.Unix(0, createdAt).UTC()
	return &snap, nil
}
