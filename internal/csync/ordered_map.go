package csync

import (
	"encoding/json"
	"slices"
	"sync"
)

// OrderedMap is a thread-safe map that iterates in insertion order.
// Overwriting an existing key keeps its original position.
type OrderedMap[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	order []K
}

// NewOrderedMap creates an empty map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: make(map[K]V),
	}
}

// Set stores value under key.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = value
}

// Update replaces the value of an existing key and reports whether the key existed.
func (m *OrderedMap[K, V]) Update(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		return false
	}
	m.data[key] = value
	return true
}

// Get retrieves the value stored under key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		return false
	}
	delete(m.data, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Values returns the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values := make([]V, 0, len(m.order))
	for _, key := range m.order {
		values = append(values, m.data[key])
	}
	return values
}

// Mutate runs f with the write lock held, giving read access to the current
// values and a setter. It lets callers compute and store in one atomic step,
// e.g. allocating the next ID.
func (m *OrderedMap[K, V]) Mutate(f func(values []V, set func(K, V))) {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make([]V, 0, len(m.order))
	for _, key := range m.order {
		values = append(values, m.data[key])
	}
	f(values, func(key K, value V) {
		if _, exists := m.data[key]; !exists {
			m.order = append(m.order, key)
		}
		m.data[key] = value
	})
}

// Reset replaces the whole content with the pairs set by fill, in one step.
// Readers see either the old content or the new one.
func (m *OrderedMap[K, V]) Reset(fill func(set func(K, V))) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[K]V)
	m.order = nil
	fill(func(key K, value V) {
		if _, exists := m.data[key]; !exists {
			m.order = append(m.order, key)
		}
		m.data[key] = value
	})
}

// MarshalJSON encodes the values as a JSON array in insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}
