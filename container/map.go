package container

// Map is a thread-compatible string-keyed map with insert-if-absent
// semantics, as required by a folder node's children collaborator.
type Map[V any] struct {
	m map[string]V
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{m: make(map[string]V)}
}

// Get looks up key, reporting whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.m[key]
	return v, ok
}

// InsertIfAbsent inserts val under key only if key is not already present,
// reporting whether the insert happened.
func (m *Map[V]) InsertIfAbsent(key string, val V) bool {
	if _, ok := m.m[key]; ok {
		return false
	}
	m.m[key] = val
	return true
}

// Remove deletes key, if present.
func (m *Map[V]) Remove(key string) {
	delete(m.m, key)
}

// Size returns the number of entries.
func (m *Map[V]) Size() int {
	return len(m.m)
}

// Keys returns the map's keys in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}

// Range calls f for every (key, value) pair, stopping early if f returns
// false.
func (m *Map[V]) Range(f func(key string, val V) bool) {
	for k, v := range m.m {
		if !f(k, v) {
			return
		}
	}
}
