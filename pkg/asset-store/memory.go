package store

import (
	"sort"
	"sync"

	"github.com/always-cache/assets"
)

// MemStore keeps files in a map. The zero value is not usable, use NewMemStore.
type MemStore struct {
	mu    *sync.RWMutex
	files map[string]assets.File
}

func NewMemStore() MemStore {
	return MemStore{
		mu:    &sync.RWMutex{},
		files: make(map[string]assets.File),
	}
}

func (m MemStore) All() ([]assets.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]assets.File, 0, len(m.files))
	for _, f := range m.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Route < files[j].Route
	})
	return files, nil
}

func (m MemStore) Get(route string) (assets.File, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[route]
	return f, ok, nil
}

func (m MemStore) Put(f assets.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[f.Route] = f
	return nil
}

func (m MemStore) Purge(route string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, route)
	return nil
}

func (m MemStore) Has(route string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[route]
	return ok
}
