package denorm

import (
	"sort"

	"github.com/reoring/denorm/container"
	"github.com/reoring/denorm/schema"
)

// Denormalize reconstructs input against s, resolving entity references
// through store. input may be a raw entity, a bare identifier, a collection of
// either, or an already-shaped container; the result keeps the input's shape
// (objects stay objects, collections stay collections, identifiers become
// objects).
//
// Reference cycles resolve to a single shared object identity per entity.
// Unresolvable inputs (nil input, unrecognized descriptor, entity missing from
// the store, unmatched union discriminant) pass through unchanged; this path
// never reports an error.
func Denormalize(input any, store Store, s schema.Schema) any {
	return walk(input, store, s, bag{})
}

// bag is the call-scoped visitation ledger, keyed by entity type then
// identifier. An entry is written before the entity's relations are walked,
// which is what lets a cycle back into the same entity resolve to the same
// (initially partial) object instead of recursing forever.
type bag map[string]map[ID]any

func walk(v any, store Store, s schema.Schema, b bag) any {
	if v == nil || s == nil {
		return v
	}
	switch sc := s.(type) {
	case *schema.Entity:
		return walkEntity(v, store, sc, b)
	case *schema.Array:
		return walkArray(v, store, sc, b)
	case *schema.Values:
		return walkValues(v, store, sc, b)
	case *schema.Union:
		return walkUnion(v, store, sc, b)
	case schema.Object:
		return walkObject(v, store, map[string]schema.Schema(sc), b)
	default:
		return v
	}
}

// walkEntity resolves v to its canonical raw entity and reconstructs it,
// registering the working copy in the bag before recursing into relations.
func walkEntity(v any, store Store, e *schema.Entity, b bag) any {
	entity, id, ok := resolve(v, store, e)
	if !ok {
		// missing entity: leave the unresolved input as-is
		return v
	}
	tb := b[e.Key()]
	if tb == nil {
		tb = map[ID]any{}
		b[e.Key()] = tb
	}
	if cur, seen := tb[id]; seen {
		return cur
	}
	work := cloneShallow(entity)
	tb[id] = work
	def := e.Definition(plainView(work))
	tb[id] = reconstructAttrs(work, store, def, b)
	return tb[id]
}

// walkObject applies a plain attribute definition. The input is cloned first;
// the caller's value is never mutated.
func walkObject(v any, store Store, def map[string]schema.Schema, b bag) any {
	switch v.(type) {
	case map[string]any, container.Node:
		return reconstructAttrs(cloneShallow(v), store, def, b)
	default:
		return v
	}
}

// reconstructAttrs rewrites each attribute declared in def and present on
// work with its reconstructed value. Plain maps are mutated in place (work
// must already be a private copy, and keeping its identity stable is what
// makes cycles converge); Nodes are updated persistently.
func reconstructAttrs(work any, store Store, def map[string]schema.Schema, b bag) any {
	switch m := work.(type) {
	case map[string]any:
		for _, name := range sortedAttrs(def) {
			cur, present := m[name]
			if !present || cur == nil {
				continue
			}
			m[name] = walk(cur, store, def[name], b)
		}
		return m
	case container.Node:
		out := m
		for _, name := range sortedAttrs(def) {
			cur, present := out.Get(name)
			if !present || cur == nil {
				continue
			}
			out = out.Set(name, walk(cur, store, def[name], b))
		}
		return out
	default:
		return work
	}
}

// walkArray maps every element of an ordered sequence through the element
// descriptor, preserving length and order. Non-sequence inputs pass through.
func walkArray(v any, store Store, a *schema.Array, b bag) any {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(seq))
	for i, el := range seq {
		out[i] = walk(el, store, a.Elem(), b)
	}
	return out
}

// walkValues reconstructs every value of a keyed mapping through the element
// descriptor, preserving the key set. Non-mapping inputs pass through.
func walkValues(v any, store Store, vs *schema.Values, b bag) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, el := range m {
		out[k] = walk(el, store, vs.Elem(), b)
	}
	return out
}

// walkUnion selects the variant entity named by the reference's discriminant
// and reconstructs through it. Any unmatched shape passes through: missing
// discriminant, unregistered tag, or underivable identifier.
func walkUnion(v any, store Store, u *schema.Union, b bag) any {
	ref := plainView(v)
	if ref == nil {
		return v
	}
	tag, ok := u.Tag(ref)
	if !ok {
		return v
	}
	variant, ok := u.Variant(tag)
	if !ok {
		return v
	}
	id, ok := variant.ID(ref)
	if !ok {
		return v
	}
	return walkEntity(id, store, variant, b)
}

// resolve derives the (entity, id) pair for an entity-shaped value or a bare
// identifier. ok is false when no identifier can be derived or no entity is
// stored under (key, id); callers treat that as nothing to denormalize.
func resolve(v any, store Store, e *schema.Entity) (entity any, id ID, ok bool) {
	switch val := v.(type) {
	case map[string]any:
		id, ok = e.ID(val)
	case container.Node:
		id, ok = e.ID(val.ToPlain())
	default:
		id, ok = ToID(val)
	}
	if !ok {
		return nil, "", false
	}
	entity, ok = store.Lookup(e.Key(), id)
	if !ok {
		return nil, id, false
	}
	return entity, id, true
}

// plainView returns a plain-map view of an object-shaped value for identifier
// and discriminant derivation, or nil when v is not object-shaped.
func plainView(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case container.Node:
		return m.ToPlain()
	default:
		return nil
	}
}

// cloneShallow copies a plain map one level deep. Nodes pass through: they are
// copy-on-write by construction.
func cloneShallow(v any) any {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k] = vv
		}
		return out
	}
	return v
}

// sortedAttrs returns definition keys in ascending order so that attribute
// processing is deterministic for a given definition.
func sortedAttrs(def map[string]schema.Schema) []string {
	ks := make([]string, 0, len(def))
	for k := range def {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
