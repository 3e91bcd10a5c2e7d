package wool

// orderedMap is a string keyed map that remembers insertion order. Setting an
// existing key replaces the value in place.
type orderedMap[V any] struct {
	keys []string
	vals map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{vals: make(map[string]V)}
}

func (m *orderedMap[V]) Get(k string) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

func (m *orderedMap[V]) Has(k string) bool {
	_, ok := m.vals[k]
	return ok
}

func (m *orderedMap[V]) Set(k string, v V) {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// SetIfAbsent stores v only when k is new and reports whether it did.
func (m *orderedMap[V]) SetIfAbsent(k string, v V) bool {
	if _, ok := m.vals[k]; ok {
		return false
	}
	m.keys = append(m.keys, k)
	m.vals[k] = v
	return true
}

func (m *orderedMap[V]) Delete(k string) {
	if _, ok := m.vals[k]; !ok {
		return
	}
	delete(m.vals, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *orderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *orderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.vals[k])
	}
	return out
}

func (m *orderedMap[V]) Len() int {
	return len(m.keys)
}
