package store

import (
	"context"
	"sync"

	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
)

// Memory is an in-process key-value store. It keeps the encoded document so
// that it round-trips through the same record format as the other backends.
type Memory struct {
	mu   sync.RWMutex
	key  string
	data map[string][]byte
}

var _ core.RoomStore = (*Memory)(nil)

func NewMemory(key string) *Memory {
	if key == "" {
		key = DefaultKey
	}
	return &Memory{key: key, data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context) ([]domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeRooms(m.data[m.key])
}

func (m *Memory) Save(_ context.Context, rooms []domain.Room) error {
	data, err := encodeRooms(rooms)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key] = data
	return nil
}

// Raw returns the stored document, or nil if nothing was saved yet.
func (m *Memory) Raw() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[m.key]
}
