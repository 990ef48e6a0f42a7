// Package persistence provides named save slots for full game state
// trees: a pluggable slot-storage interface, a SQLite backend, and
// the versioned blob codec.
package persistence

import (
	"errors"
	"time"
)

// Persistence failure modes. Load aborts distinctly on each, leaving
// the in-memory session untouched.
var (
	ErrSlotNotFound       = errors.New("persistence: slot not found")
	ErrUnsupportedVersion = errors.New("persistence: unsupported save format version")
	ErrCorruptSave        = errors.New("persistence: save data failed validation")
)

// SlotMeta describes a save slot for the load menu.
type SlotMeta struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	GameDate      string    `json:"game_date"` // e.g. "Spring Day 12, Year 3"
	Season        string    `json:"season"`
	Year          int       `json:"year"`
	SavedAt       time.Time `json:"saved_at"`
	FormatVersion int       `json:"format_version"`
}

// Slot is a stored save: metadata plus the opaque versioned blob.
type Slot struct {
	SlotMeta
	Blob []byte
}

// Store is the slot-storage backend interface. The engine is
// storage-agnostic; SQLite is the production implementation and an
// in-memory store backs tests.
type Store interface {
	// ListSlots returns slot metadata, most recently saved first.
	ListSlots() ([]SlotMeta, error)
	// ReadSlot returns a slot by id, or ErrSlotNotFound.
	ReadSlot(id string) (Slot, error)
	// WriteSlot inserts or replaces a slot by id.
	WriteSlot(slot Slot) error
	// DeleteSlot removes a slot, or returns ErrSlotNotFound.
	DeleteSlot(id string) error
	// FindByName returns the slot id currently holding name, if any.
	FindByName(name string) (string, bool, error)
}
