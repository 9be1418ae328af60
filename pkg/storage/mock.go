package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/jwebster45206/tower-engine/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[string]*state.Snapshot
	age       *int
	pingError error
	saveError error
	loadError error
	ageError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[string]*state.Snapshot),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes SaveSession fail with err
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetLoadError makes LoadSession fail with err
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetAgeError makes SaveAge and LoadAge fail with err
func (m *MockStorage) SetAgeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ageError = err
}

// PutSession stores snap as-is, skipping validation (for testing)
func (m *MockStorage) PutSession(slot string, snap *state.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[slot] = snap
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveSession mocks saving a session
func (m *MockStorage) SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	cp := *snap
	cp.Player = *snap.Player.Clone()
	m.sessions[slot] = &cp
	return nil
}

// LoadSession mocks loading a session
func (m *MockStorage) LoadSession(ctx context.Context, slot string) (*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	snap, exists := m.sessions[slot]
	if !exists {
		return nil, nil // Return nil for not found
	}
	cp := *snap
	cp.Player = *snap.Player.Clone()
	return &cp, nil
}

// DeleteSession mocks deleting a session
func (m *MockStorage) DeleteSession(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, slot)
	return nil
}

// SaveAge mocks saving the age
func (m *MockStorage) SaveAge(ctx context.Context, age int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ageError != nil {
		return m.ageError
	}
	m.age = &age
	return nil
}

// LoadAge mocks loading the age
func (m *MockStorage) LoadAge(ctx context.Context) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ageError != nil {
		return 0, false, m.ageError
	}
	if m.age == nil {
		return 0, false, nil
	}
	return *m.age, true, nil
}
