// Package schema provides the descriptor types that drive denormalization.
//
// Overview
//   - Entity: a record stored in the entity store under a type key, with an
//     identifier derived from the record and a definition mapping attribute
//     names to child descriptors.
//   - ArrayOf/ValuesOf: ordered and keyed collections of a single element
//     descriptor.
//   - NewUnion: a tagged choice among Entity descriptors, resolved through a
//     discriminant carried on the normalized reference.
//   - Object: a plain attribute-to-descriptor map, reconstructed in place and
//     never entity-cached.
//
// The descriptor set is closed: Schema is satisfied only by the types in this
// package, so the engine dispatches with a type switch instead of probing
// value shapes at runtime.
//
// Entity definitions are declared after construction via Define, which is what
// makes self-referential and mutually recursive schemas expressible:
//
//	user := schema.NewEntity("users")
//	user.Define(map[string]schema.Schema{"bestFriend": user})
package schema
