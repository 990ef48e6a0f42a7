package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/farmstead/internal/config"
	"github.com/talgya/farmstead/internal/engine"
)

// FormatVersion is the current save blob layout. Blobs written with a
// different version are rejected on load.
const FormatVersion = 1

// envelope wraps the state tree with its format version.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Manager implements named-slot save/load on top of a Store. It owns
// the versioned codec; the store only ever sees opaque blobs.
type Manager struct {
	store Store
	cfg   config.Config
	now   func() time.Time // injectable for tests
}

// NewManager wraps a slot store.
func NewManager(store Store, cfg config.Config) *Manager {
	return &Manager{store: store, cfg: cfg, now: time.Now}
}

// Save serializes the full game state under name, overwriting the
// slot if the name is already taken. Returns the slot metadata.
func (m *Manager) Save(name string, g *engine.Game) (SlotMeta, error) {
	state, err := g.MarshalState()
	if err != nil {
		return SlotMeta{}, fmt.Errorf("encode state: %w", err)
	}
	blob, err := json.Marshal(envelope{Version: FormatVersion, State: state})
	if err != nil {
		return SlotMeta{}, fmt.Errorf("encode envelope: %w", err)
	}

	// Saving under an existing name overwrites that slot in place.
	id, exists, err := m.store.FindByName(name)
	if err != nil {
		return SlotMeta{}, err
	}
	if !exists {
		id = uuid.NewString()
	}

	meta := SlotMeta{
		ID:            id,
		Name:          name,
		GameDate:      g.Date.String(),
		Season:        g.Date.Season.String(),
		Year:          g.Date.Year,
		SavedAt:       m.now().UTC(),
		FormatVersion: FormatVersion,
	}
	if err := m.store.WriteSlot(Slot{SlotMeta: meta, Blob: blob}); err != nil {
		return SlotMeta{}, err
	}

	slog.Info("game saved", "slot", name, "id", id, "date", meta.GameDate, "bytes", len(blob))
	return meta, nil
}

// Load deserializes a slot into a fresh game. Fails with
// ErrUnsupportedVersion or ErrCorruptSave without touching any
// in-memory session; swapping in the returned game is the caller's
// move.
func (m *Manager) Load(slotID string) (*engine.Game, error) {
	slot, err := m.store.ReadSlot(slotID)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(slot.Blob, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, env.Version, FormatVersion)
	}

	g, err := engine.Restore(m.cfg, env.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	slog.Info("game loaded", "slot", slot.Name, "id", slotID, "date", g.Date.String())
	return g, nil
}

// List returns slot metadata, most recently saved first.
func (m *Manager) List() ([]SlotMeta, error) {
	return m.store.ListSlots()
}

// Delete removes a slot.
func (m *Manager) Delete(slotID string) error {
	if err := m.store.DeleteSlot(slotID); err != nil {
		return err
	}
	slog.Info("slot deleted", "id", slotID)
	return nil
}
