package meta

import "encoding/json"

// OrderedMap is a map that remembers first-insertion order. Replacing a value
// keeps the key's original position.
type OrderedMap[K comparable, V any] struct {
	underlying map[K]V
	order      []K
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		underlying: make(map[K]V),
		order:      make([]K, 0),
	}
}

// Set stores value under key and reports whether an existing value was replaced.
func (m *OrderedMap[K, V]) Set(key K, value V) bool {
	_, exists := m.underlying[key]
	m.underlying[key] = value
	if !exists {
		m.order = append(m.order, key)
	}
	return exists
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.underlying[key]
	return value, ok
}

func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, len(m.order))
	for i, k := range m.order {
		values[i] = m.underlying[k]
	}
	return values
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.order)
}

// MarshalJSON encodes the values as an array, in order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}
