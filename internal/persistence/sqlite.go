package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore is the production slot backend.
type SQLiteStore struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating
// parent directories as needed.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	store := &SQLiteStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		game_date TEXT NOT NULL,
		season TEXT NOT NULL,
		year INTEGER NOT NULL,
		saved_at DATETIME NOT NULL,
		format_version INTEGER NOT NULL,
		blob BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_slots_saved_at ON slots(saved_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

type slotRow struct {
	ID            string       `db:"id"`
	Name          string       `db:"name"`
	GameDate      string       `db:"game_date"`
	Season        string       `db:"season"`
	Year          int          `db:"year"`
	SavedAt       sql.NullTime `db:"saved_at"`
	FormatVersion int          `db:"format_version"`
	Blob          []byte       `db:"blob"`
}

func (r slotRow) meta() SlotMeta {
	return SlotMeta{
		ID:            r.ID,
		Name:          r.Name,
		GameDate:      r.GameDate,
		Season:        r.Season,
		Year:          r.Year,
		SavedAt:       r.SavedAt.Time,
		FormatVersion: r.FormatVersion,
	}
}

// ListSlots returns slot metadata, most recently saved first.
func (s *SQLiteStore) ListSlots() ([]SlotMeta, error) {
	var rows []slotRow
	err := s.conn.Select(&rows,
		`SELECT id, name, game_date, season, year, saved_at, format_version
		 FROM slots ORDER BY saved_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	metas := make([]SlotMeta, len(rows))
	for i, r := range rows {
		metas[i] = r.meta()
	}
	return metas, nil
}

// ReadSlot returns a full slot by id.
func (s *SQLiteStore) ReadSlot(id string) (Slot, error) {
	var row slotRow
	err := s.conn.Get(&row,
		`SELECT id, name, game_date, season, year, saved_at, format_version, blob
		 FROM slots WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, ErrSlotNotFound
	}
	if err != nil {
		return Slot{}, fmt.Errorf("read slot: %w", err)
	}
	return Slot{SlotMeta: row.meta(), Blob: row.Blob}, nil
}

// WriteSlot inserts or replaces a slot by id.
func (s *SQLiteStore) WriteSlot(slot Slot) error {
	_, err := s.conn.Exec(
		`INSERT OR REPLACE INTO slots
		 (id, name, game_date, season, year, saved_at, format_version, blob)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slot.ID, slot.Name, slot.GameDate, slot.Season, slot.Year,
		slot.SavedAt, slot.FormatVersion, slot.Blob,
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", slot.Name, err)
	}
	return nil
}

// DeleteSlot removes a slot by id.
func (s *SQLiteStore) DeleteSlot(id string) error {
	res, err := s.conn.Exec(`DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// FindByName returns the id of the slot holding name, if any.
func (s *SQLiteStore) FindByName(name string) (string, bool, error) {
	var id string
	err := s.conn.Get(&id, `SELECT id FROM slots WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find slot by name: %w", err)
	}
	return id, true, nil
}
