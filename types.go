package denorm

import "github.com/reoring/denorm/schema"

// ID is a canonical entity identifier, re-exported from the schema package so
// callers addressing entities do not need both imports.
type ID = schema.ID

// ToID canonicalizes a raw identifier value. See schema.ToID.
func ToID(v any) (ID, bool) { return schema.ToID(v) }

// Table maps identifiers to raw entity data for one entity type. Raw data is
// a map[string]any, a container.Node, or any nesting of maps, slices, and
// scalars underneath.
type Table map[ID]any

// Store is the flat, normalized entity store: type key to table. The engine
// only reads it, never mutates it.
type Store map[string]Table

// Lookup returns the raw entity stored under (key, id).
func (s Store) Lookup(key string, id ID) (any, bool) {
	tb, ok := s[key]
	if !ok {
		return nil, false
	}
	v, ok := tb[id]
	return v, ok
}
