// Package storage provides SQLite-based persistence for game recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/berrynoid/internal/core"
)

// ErrNotFound is returned when no recording matches an ID.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.berrynoid/berrynoid.db"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			level_pack BLOB,
			lives INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			final_hash TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);

		CREATE TABLE IF NOT EXISTS recording_steps (
			recording_id TEXT NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			dt REAL NOT NULL DEFAULT 0,
			event_kind INTEGER NOT NULL DEFAULT 0,
			action INTEGER NOT NULL DEFAULT 0,
			confirmed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording with all of its steps in one transaction.
func (s *Store) SaveRecording(rec Recording) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO recordings (id, game_id, seed, config, level_pack, lives, level, ticks, final_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Seed, string(rec.Config), rec.LevelPack,
		rec.Lives, rec.Level, rec.Ticks, strconv.FormatUint(rec.FinalHash, 16),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO recording_steps (recording_id, seq, kind, dt, event_kind, action, confirmed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare steps: %w", err)
	}
	defer stmt.Close()

	for i, st := range rec.Steps {
		if _, err := stmt.Exec(rec.ID, i, int(st.Kind), st.DT, int(st.Event.Kind), int(st.Event.Action), st.Confirmed); err != nil {
			return fmt.Errorf("storage: cannot save step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return nil
}

// ResolveID expands a unique ID prefix to the full recording ID.
func (s *Store) ResolveID(prefix string) (string, error) {
	rows, err := s.db.Query(
		"SELECT id FROM recordings WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("storage: recording id %q is ambiguous", prefix)
	}
}

// LoadRecording loads a recording and its steps by ID or unique ID prefix.
func (s *Store) LoadRecording(idOrPrefix string) (Recording, error) {
	id, err := s.ResolveID(idOrPrefix)
	if err != nil {
		return Recording{}, err
	}

	var (
		rec       Recording
		config    string
		hash      string
		createdAt any
	)
	err = s.db.QueryRow(
		`SELECT id, game_id, seed, config, level_pack, lives, level, ticks, final_hash, created_at
		 FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &config, &rec.LevelPack, &rec.Lives, &rec.Level, &rec.Ticks, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	rec.Config = []byte(config)
	rec.CreatedAt = parseTime(createdAt)
	if hash != "" {
		if rec.FinalHash, err = strconv.ParseUint(hash, 16, 64); err != nil {
			return Recording{}, fmt.Errorf("storage: corrupt hash %q: %w", hash, err)
		}
	}

	rows, err := s.db.Query(
		`SELECT kind, dt, event_kind, action, confirmed
		 FROM recording_steps
		 WHERE recording_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return Recording{}, fmt.Errorf("storage: cannot query steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			st                    Step
			kind, evKind, action int
		)
		if err := rows.Scan(&kind, &st.DT, &evKind, &action, &st.Confirmed); err != nil {
			return Recording{}, fmt.Errorf("storage: cannot scan step: %w", err)
		}
		st.Kind = StepKind(kind)
		st.Event.Kind = core.EventKind(evKind)
		st.Event.Action = core.Action(action)
		rec.Steps = append(rec.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// ListRecordings returns the most recent recordings without their steps.
func (s *Store) ListRecordings(limit int) ([]RecordingInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.seed, r.lives, r.level, r.ticks, r.created_at,
		        (SELECT COUNT(*) FROM recording_steps st WHERE st.recording_id = r.id)
		 FROM recordings r
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var infos []RecordingInfo
	for rows.Next() {
		var (
			info      RecordingInfo
			createdAt any
		)
		if err := rows.Scan(&info.ID, &info.GameID, &info.Seed, &info.Lives, &info.Level, &info.Ticks, &createdAt, &info.Steps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteRecording removes a recording and its steps.
func (s *Store) DeleteRecording(idOrPrefix string) error {
	id, err := s.ResolveID(idOrPrefix)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM recording_steps WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete steps: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
