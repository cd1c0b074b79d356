package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[int64]storedSnapshot // graphID -> revision -> snapshot
	closed bool
}

// storedSnapshot holds snapshot data with metadata for List().
type storedSnapshot struct {
	data      []byte
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[int64]storedSnapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(graphID string, data []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	if m.data[graphID] == nil {
		m.data[graphID] = make(map[int64]storedSnapshot)
	}

	var revision int64 = 1
	for rev := range m.data[graphID] {
		if rev >= revision {
			revision = rev + 1
		}
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[graphID][revision] = storedSnapshot{
		data:      stored,
		timestamp: time.Now().UTC(),
	}

	return revision, nil
}

// Load implements Store.
func (m *MemoryStore) Load(graphID string, revision int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	graph, ok := m.data[graphID]
	if !ok {
		return nil, ErrNotFound
	}

	snap, ok := graph[revision]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]byte, len(snap.data))
	copy(result, snap.data)
	return result, nil
}

// LoadLatest implements Store.
func (m *MemoryStore) LoadLatest(graphID string) ([]byte, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, 0, ErrStoreClosed
	}

	graph, ok := m.data[graphID]
	if !ok || len(graph) == 0 {
		return nil, 0, ErrNotFound
	}

	var latest int64
	for rev := range graph {
		if rev > latest {
			latest = rev
		}
	}

	snap := graph[latest]
	result := make([]byte, len(snap.data))
	copy(result, snap.data)
	return result, latest, nil
}

// List implements Store.
func (m *MemoryStore) List(graphID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	graph, ok := m.data[graphID]
	if !ok {
		return []Info{}, nil
	}

	infos := make([]Info, 0, len(graph))
	for rev, snap := range graph {
		infos = append(infos, Info{
			GraphID:   graphID,
			Revision:  rev,
			Timestamp: snap.timestamp,
			Size:      int64(len(snap.data)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Revision < infos[j].Revision
	})

	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(graphID string, revision int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if graph, ok := m.data[graphID]; ok {
		delete(graph, revision)
	}
	return nil
}

// DeleteGraph implements Store.
func (m *MemoryStore) DeleteGraph(graphID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, graphID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
