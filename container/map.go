package container

import (
	"sort"

	"github.com/benbjohnson/immutable"
)

// Map is a Node backed by an immutable hash map. Every Set produces a new Map
// sharing structure with its parent, so callers may hold references to earlier
// versions safely.
type Map struct {
	m *immutable.Map[string, any]
}

var _ Node = (*Map)(nil)

// NewMap returns an empty persistent map.
func NewMap() *Map {
	return &Map{m: immutable.NewMap[string, any](nil)}
}

// FromPlain converts plain map data into a persistent Map. Nested
// map[string]any values become nested Maps; slices are copied with their
// elements converted; scalars are stored as-is.
func FromPlain(src map[string]any) *Map {
	b := immutable.NewMapBuilder[string, any](nil)
	for k, v := range src {
		b.Set(k, fromPlainValue(v))
	}
	return &Map{m: b.Map()}
}

func fromPlainValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return FromPlain(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromPlainValue(e)
		}
		return out
	default:
		return v
	}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	return m.m.Get(key)
}

// Set returns a new Map with key bound to value.
func (m *Map) Set(key string, value any) Node {
	return &Map{m: m.m.Set(key, value)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return m.m.Len()
}

// Keys returns the map's keys in ascending order.
func (m *Map) Keys() []string {
	ks := make([]string, 0, m.m.Len())
	it := m.m.Iterator()
	for !it.Done() {
		k, _, _ := it.Next()
		ks = append(ks, k)
	}
	// the hash map iterates in hash order; sort for determinism
	sort.Strings(ks)
	return ks
}

// ToPlain converts the Map (recursively) back into plain map data.
func (m *Map) ToPlain() map[string]any {
	out := make(map[string]any, m.m.Len())
	it := m.m.Iterator()
	for !it.Done() {
		k, v, _ := it.Next()
		out[k] = toPlainValue(v)
	}
	return out
}

func toPlainValue(v any) any {
	switch x := v.(type) {
	case Node:
		return x.ToPlain()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toPlainValue(e)
		}
		return out
	default:
		return v
	}
}
