package blockcache

import (
	"sort"
	"sync"
)

// Store is the mutable key to entry map shared by all loaders wrapped
// against one Context. Implementations must make LoadOrStore atomic so that
// at most one entry is ever inserted for a key.
type Store interface {
	Load(key string) (Entry, bool)
	// LoadOrStore returns the existing entry for key if present. Otherwise it
	// stores entry and returns it with loaded set to false.
	LoadOrStore(key string, entry Entry) (actual Entry, loaded bool)
	Delete(key string)
	Len() int
	Keys() []string
}

// MemoryStore is an unbounded Store backed by a map. It never evicts entries
// on its own.
type MemoryStore struct {
	entries map[string]Entry
	mutex   sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

func (s *MemoryStore) Load(key string) (Entry, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

func (s *MemoryStore) LoadOrStore(key string, entry Entry) (Entry, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if existing, ok := s.entries[key]; ok {
		return existing, true
	}

	s.entries[key] = entry
	return entry, false
}

func (s *MemoryStore) Delete(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, key)
}

func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.entries)
}

// Keys returns the stored keys in lexical order.
func (s *MemoryStore) Keys() []string {
	s.mutex.RLock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	s.mutex.RUnlock()

	sort.Strings(keys)
	return keys
}
