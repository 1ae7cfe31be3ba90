package store

import (
	"sync"
	"sync/atomic"
)

// Map is a generic thread-safe map with hit/miss statistics.
//
// Map is safe for concurrent use.
// Map must not be copied after creation (has mutex).
type Map[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a value. It does not touch the statistics.
// Returns (value, true) if found, (zero, false) otherwise.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	return v, ok
}

// GetOrLoad returns the value for key, loading it on a miss.
//
// An existing entry counts as a hit only if accept is nil or returns true
// for it; a rejected entry is treated as a miss and replaced by a successful
// load. When load returns an error nothing is inserted, a rejected entry is
// left untouched, and the error is returned.
//
// Both callbacks run under the map lock.
func (m *Map[K, V]) GetOrLoad(key K, accept func(V) bool, load func() (V, error)) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.entries[key]; ok && (accept == nil || accept(v)) {
		m.hits.Add(1)
		return v, true, nil
	}

	m.misses.Add(1)

	v, err := load()
	if err != nil {
		var zero V
		return zero, false, err
	}
	m.entries[key] = v
	return v, false, nil
}

// Delete removes an entry and returns the removed value.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	return v, ok
}

// CompareAndDelete removes the entry for key only if match returns true for
// the stored value. Returns true if the entry was removed.
func (m *Map[K, V]) CompareAndDelete(key K, match func(V) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if !ok || !match(v) {
		return false
	}
	delete(m.entries, key)
	return true
}

// Drain removes all entries and returns the removed values in unspecified order.
func (m *Map[K, V]) Drain() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make([]V, 0, len(m.entries))
	for _, v := range m.entries {
		values = append(values, v)
	}
	m.entries = make(map[K]V)
	return values
}

// Contains reports whether key has an entry for which accept returns true.
// A nil accept matches any entry.
func (m *Map[K, V]) Contains(key K, accept func(V) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	return ok && (accept == nil || accept(v))
}

// Keys returns the keys of all entries in unspecified order.
func (m *Map[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]K, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Stats returns current statistics.
func (m *Map[K, V]) Stats() Stats {
	hits := m.hits.Load()
	misses := m.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:     m.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// ResetStats resets the hit and miss counters to zero.
func (m *Map[K, V]) ResetStats() {
	m.hits.Store(0)
	m.misses.Store(0)
}

// Stats contains map statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of GetOrLoad calls served from an existing entry.
	Hits uint64
	// Misses is the number of GetOrLoad calls that invoked load.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}
