// Package kv provides the named-slot key-value store the expense tracker
// persists into. A slot holds one serialized collection or record.
package kv

import "sync"

// Well-known slot names.
const (
	UsersSlot    = "expense_tracker_users"
	SessionSlot  = "expense_tracker_session"
	ExpensesSlot = "expense_tracker_expenses"
)

// Store maps string keys to string values.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Memory is an in-memory Store, used in tests and anywhere durability
// is not needed.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *Memory) Close() error { return nil }
