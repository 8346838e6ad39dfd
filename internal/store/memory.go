package store

import (
	"context"
	"sync"

	"fitscore/internal/models"
)

// Memory хранилище в памяти процесса, для тестов и STORE_BACKEND=memory
type Memory struct {
	mu      sync.RWMutex
	entries []models.Entry
}

// NewMemory создаёт хранилище в памяти с начальными записями
func NewMemory(entries ...models.Entry) *Memory {
	return &Memory{entries: cloneEntries(entries)}
}

// LoadAll копия текущих записей
func (m *Memory) LoadAll(_ context.Context) ([]models.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneEntries(m.entries), nil
}

// AppendAndPersist заменяет записи целиком
func (m *Memory) AppendAndPersist(_ context.Context, entries []models.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = cloneEntries(entries)
	return nil
}

func cloneEntries(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	return out
}
