package keychain

import "sync"

// MemoryStore keeps the token in process memory. It is used when the OS keychain
// is bypassed and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store pre-populated with token, which may be empty.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) ClearToken() error {
	return m.SaveToken("")
}

var (
	_ TokenStore = (*MemoryStore)(nil)
	_ TokenStore = (*Manager)(nil)
)
