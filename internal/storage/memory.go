package storage

import (
	"context"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

var _ Port = (*MemoryStore)(nil)

// MemoryStore keeps the serialized document in process memory
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the document
func (m *MemoryStore) Save(_ context.Context, doc *types.Document) error {
	data, err := types.MarshalDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Load returns the stored document or ErrNotFound
func (m *MemoryStore) Load(_ context.Context) (*types.Document, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()
	if data == nil {
		return nil, ErrNotFound
	}
	return decode(data)
}

// Clear removes the stored document
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// SetRaw stores data verbatim, bypassing encoding
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Raw returns the stored bytes
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// SaveCount returns how many times Save succeeded
func (m *MemoryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
