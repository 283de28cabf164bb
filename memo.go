package denorm

import (
	"reflect"
	"strings"

	"github.com/reoring/denorm/container"
	"github.com/reoring/denorm/schema"
)

// privatePrefix marks attributes excluded from the memoized relation diff.
const privatePrefix = "_"

// cellKey addresses one cache cell.
type cellKey struct {
	key string
	id  ID
}

// cell remembers the last raw entity seen for a (type, id) pair and the last
// denormalized result computed from it.
type cell struct {
	raw    any
	result any
}

// Cache is the memoization state for the incremental denormalization path.
// It is an explicitly owned object: construct one with NewCache, share it
// across calls that should reuse each other's results, and Reset or drop it
// to release everything. Cells are never evicted implicitly.
//
// A Cache must not be used by concurrent calls; give each goroutine its own
// or synchronize externally.
type Cache struct {
	cells map[cellKey]*cell
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{cells: map[cellKey]*cell{}}
}

// Reset discards every cell.
func (c *Cache) Reset() {
	c.cells = map[cellKey]*cell{}
}

// Len returns the number of cached cells.
func (c *Cache) Len() int {
	return len(c.cells)
}

// Denormalize reconstructs input against s like Denormalize, but reuses
// cached results so that any subtree whose underlying raw data is unchanged
// (by reference) since the previous call comes back with the exact same
// object reference.
//
// Behavior differs from the non-memoized path in two documented ways: a
// missing entity yields nil instead of passing the unresolved input through,
// and a reference cycle yields the bare identifier at the point the cycle is
// detected instead of a shared object. A union reference without a
// discriminant is a caller contract violation and fails fast with Issues.
func (c *Cache) Denormalize(input any, store Store, s schema.Schema) (any, error) {
	return c.walk(input, store, s, map[cellKey]bool{})
}

func (c *Cache) walk(v any, store Store, s schema.Schema, visited map[cellKey]bool) (any, error) {
	if v == nil || s == nil {
		return v, nil
	}
	switch sc := s.(type) {
	case *schema.Entity:
		return c.walkEntity(v, store, sc, visited)
	case *schema.Array:
		return c.walkArray(v, store, sc, visited)
	case *schema.Values:
		return c.walkValues(v, store, sc, visited)
	case *schema.Union:
		return c.walkUnion(v, store, sc, visited)
	case schema.Object:
		return c.diffAttrs(v, store, map[string]schema.Schema(sc), visited, false)
	default:
		return v, nil
	}
}

// walkEntity is the incremental entity reconstruction: resolve, seed or reuse
// the cache cell, recompute only the relations whose reconstructed value
// changed by reference, and keep the cached object identity when nothing did.
func (c *Cache) walkEntity(v any, store Store, e *schema.Entity, visited map[cellKey]bool) (any, error) {
	entity, id, ok := resolve(v, store, e)
	if !ok {
		// missing entity: explicit nil on the memoized path
		return nil, nil
	}
	k := cellKey{key: e.Key(), id: id}
	cl := c.cells[k]
	if cl == nil {
		cl = &cell{raw: entity, result: entity}
		c.cells[k] = cl
	}
	if visited[k] {
		// cycle: the caller receives the identifier, not an object
		return id, nil
	}
	visited[k] = true
	// visitation lasts only while this entity's relation subtree is walked
	defer delete(visited, k)

	if !sameRef(cl.raw, entity) {
		// raw data changed since the last call: every prior relation
		// reconstruction for this entity is invalid
		cl.raw = entity
		cl.result = entity
	}
	out, err := c.diffAttrs(cl.result, store, e.Definition(plainView(cl.result)), visited, true)
	if err != nil {
		return nil, err
	}
	cl.result = out
	return out, nil
}

// diffAttrs reconstructs every declared attribute present on ref and collects
// the ones whose value changed by reference. When nothing changed, ref itself
// is returned; otherwise a shallow copy with only the changed attributes
// overwritten.
func (c *Cache) diffAttrs(ref any, store Store, def map[string]schema.Schema, visited map[cellKey]bool, skipPrivate bool) (any, error) {
	switch m := ref.(type) {
	case map[string]any:
		var changed map[string]any
		for _, name := range sortedAttrs(def) {
			if skipPrivate && strings.HasPrefix(name, privatePrefix) {
				continue
			}
			cur, present := m[name]
			if !present || cur == nil {
				continue
			}
			next, err := c.walk(cur, store, def[name], visited)
			if err != nil {
				return nil, err
			}
			if !sameRef(next, cur) {
				if changed == nil {
					changed = map[string]any{}
				}
				changed[name] = next
			}
		}
		if changed == nil {
			return m, nil
		}
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k] = vv
		}
		for k, vv := range changed {
			out[k] = vv
		}
		return out, nil
	case container.Node:
		out := m
		dirty := false
		for _, name := range sortedAttrs(def) {
			if skipPrivate && strings.HasPrefix(name, privatePrefix) {
				continue
			}
			cur, present := out.Get(name)
			if !present || cur == nil {
				continue
			}
			next, err := c.walk(cur, store, def[name], visited)
			if err != nil {
				return nil, err
			}
			if !sameRef(next, cur) {
				out = out.Set(name, next)
				dirty = true
			}
		}
		if !dirty {
			return m, nil
		}
		return out, nil
	default:
		return ref, nil
	}
}

// walkArray reconstructs each element; if every element came back
// reference-identical the original sequence reference is returned, keeping
// collection identity stable across calls.
func (c *Cache) walkArray(v any, store Store, a *schema.Array, visited map[cellKey]bool) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return v, nil
	}
	out := make([]any, len(seq))
	dirty := false
	for i, el := range seq {
		next, err := c.walk(el, store, a.Elem(), visited)
		if err != nil {
			return nil, err
		}
		out[i] = next
		if !sameRef(next, el) {
			dirty = true
		}
	}
	if !dirty {
		return seq, nil
	}
	return out, nil
}

// walkValues reconstructs each value of a keyed mapping with the same
// reference-stability rule as walkArray.
func (c *Cache) walkValues(v any, store Store, vs *schema.Values, visited map[cellKey]bool) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	out := make(map[string]any, len(m))
	dirty := false
	for k, el := range m {
		next, err := c.walk(el, store, vs.Elem(), visited)
		if err != nil {
			return nil, err
		}
		out[k] = next
		if !sameRef(next, el) {
			dirty = true
		}
	}
	if !dirty {
		return m, nil
	}
	return out, nil
}

// walkUnion resolves the variant like the non-memoized path, except that a
// reference missing its discriminant is a contract violation and fails fast.
func (c *Cache) walkUnion(v any, store Store, u *schema.Union, visited map[cellKey]bool) (any, error) {
	ref := plainView(v)
	if ref == nil {
		return v, nil
	}
	tag, ok := u.Tag(ref)
	if !ok {
		return nil, Issues{Issue{Path: "/", Code: CodeDiscriminatorMissing, Message: "union reference carries no discriminant", Hint: "expected a tag attribute on the normalized reference"}}
	}
	variant, ok := u.Variant(tag)
	if !ok {
		return v, nil
	}
	id, ok := variant.ID(ref)
	if !ok {
		return v, nil
	}
	return c.walkEntity(id, store, variant, visited)
}

// sameRef reports reference identity the way the incremental diff needs it:
// maps, slices, and pointers compare by address, scalars by value. Values of
// different dynamic kinds are never the same reference.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Len() == rb.Len() && (ra.Len() == 0 || ra.Pointer() == rb.Pointer())
	default:
		if ra.Type() != rb.Type() || !ra.Type().Comparable() {
			return false
		}
		return a == b
	}
}
