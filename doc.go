// Package denorm reconstructs nested, possibly cyclic object graphs from a
// flat, normalized entity store, guided by declarative schema descriptors.
// It is the inverse of a normalization step that flattens nested records into
// per-type lookup tables keyed by identifier.
//
// The package provides:
//
// - Schema-driven recursive reconstruction (Denormalize) with correct
//   resolution of circular references between entities
// - An incremental, reference-identity-aware memoized path (Cache.Denormalize)
//   that returns the same object reference for subtrees whose underlying data
//   has not changed
// - Store ingestion from JSON and YAML (StoreFromJSON/StoreFromYAML) and a
//   YAML schema-document loader (LoadSchemasYAML)
//
// Design policy:
// - Keep the public API and engine in the root package; schema descriptors
//   live under schema/, the container capability under container/, and the
//   CLI under cmd/denorm.
// - Schema descriptors form a closed variant set; the engine dispatches with
//   a type switch, never by probing value shapes.
// - The memoization cache is an explicitly owned object with its own
//   lifecycle, not package-level state.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := schema.NewEntity("users")
//	user.Define(map[string]schema.Schema{"bestFriend": user})
//
//	store, _ := denorm.StoreFromJSON(data)
//	v := denorm.Denormalize(denorm.ID("1"), store, user)
//
//	cache := denorm.NewCache()
//	v1, _ := cache.Denormalize(denorm.ID("1"), store, user)
//	v2, _ := cache.Denormalize(denorm.ID("1"), store, user) // same reference
package denorm
