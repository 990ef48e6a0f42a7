package persistence

import "sort"

// MemoryStore is an in-memory Store, used by tests and as a reference
// implementation of the slot semantics.
type MemoryStore struct {
	slots map[string]Slot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]Slot)}
}

// ListSlots returns slot metadata, most recently saved first.
func (m *MemoryStore) ListSlots() ([]SlotMeta, error) {
	metas := make([]SlotMeta, 0, len(m.slots))
	for _, slot := range m.slots {
		metas = append(metas, slot.SlotMeta)
	}
	sort.Slice(metas, func(i, j int) bool {
		if !metas[i].SavedAt.Equal(metas[j].SavedAt) {
			return metas[i].SavedAt.After(metas[j].SavedAt)
		}
		return metas[i].Name < metas[j].Name
	})
	return metas, nil
}

// ReadSlot returns a slot by id.
func (m *MemoryStore) ReadSlot(id string) (Slot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return Slot{}, ErrSlotNotFound
	}
	return slot, nil
}

// WriteSlot inserts or replaces a slot by id.
func (m *MemoryStore) WriteSlot(slot Slot) error {
	m.slots[slot.ID] = slot
	return nil
}

// DeleteSlot removes a slot by id.
func (m *MemoryStore) DeleteSlot(id string) error {
	if _, ok := m.slots[id]; !ok {
		return ErrSlotNotFound
	}
	delete(m.slots, id)
	return nil
}

// FindByName returns the id of the slot holding name, if any.
func (m *MemoryStore) FindByName(name string) (string, bool, error) {
	for id, slot := range m.slots {
		if slot.Name == name {
			return id, true, nil
		}
	}
	return "", false, nil
}
