package client

import (
	"sync"
	"time"
)

// SessionState - сохраненная между запусками сессия CLI
type SessionState struct {
	Email      string
	APIBaseURL string
	UpdatedAt  time.Time
}

// Storage - локальное хранилище состояния клиента
type Storage interface {
	SaveSession(state SessionState) error
	// LoadSession возвращает false, если сессия еще не сохранялась
	LoadSession() (SessionState, bool, error)
	Close() error
}

// MemoryStorage - временное in-memory хранилище, если SQLite недоступен
type MemoryStorage struct {
	mu    sync.Mutex
	state SessionState
	saved bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) SaveSession(state SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}
	m.state = state
	m.saved = true
	return nil
}

func (m *MemoryStorage) LoadSession() (SessionState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.saved, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
