package schema

// defaultIDAttribute is consulted whenever identifier derivation yields
// nothing, matching the store's conventional primary-key attribute.
const defaultIDAttribute = "id"

// IDFunc derives an identifier from a plain view of a record. ok reports
// whether an identifier could be derived at all.
type IDFunc func(value map[string]any) (ID, bool)

// InferFunc derives a per-instance attribute definition for entities whose
// shape varies by discriminant.
type InferFunc func(instance map[string]any) map[string]Schema

// Entity describes a record type stored in the entity store under Key. Its
// definition maps attribute names to the descriptors of related values.
type Entity struct {
	key        string
	idAttr     string
	idFunc     IDFunc
	infer      InferFunc
	definition map[string]Schema
}

var _ Schema = (*Entity)(nil)

func (*Entity) schemaVariant() {}

// EntityOption configures entity construction.
type EntityOption func(*Entity)

// WithIDAttribute selects the attribute the identifier is read from.
// The default is "id".
func WithIDAttribute(name string) EntityOption {
	return func(e *Entity) { e.idAttr = name }
}

// WithIDFunc installs a custom identifier derivation. When fn yields nothing
// for a value, derivation falls back to the "id" attribute.
func WithIDFunc(fn IDFunc) EntityOption {
	return func(e *Entity) { e.idFunc = fn }
}

// WithInferredDefinition installs a per-instance definition derivation,
// replacing the static definition for entities whose attribute set depends on
// the instance.
func WithInferredDefinition(fn InferFunc) EntityOption {
	return func(e *Entity) { e.infer = fn }
}

// NewEntity returns an entity descriptor for the given store type key.
func NewEntity(key string, opts ...EntityOption) *Entity {
	e := &Entity{key: key, definition: map[string]Schema{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Key returns the entity-store type key.
func (e *Entity) Key() string { return e.key }

// Define merges def into the entity's definition. Declaring relations after
// construction is what allows an entity to reference itself or a mutually
// recursive peer.
func (e *Entity) Define(def map[string]Schema) *Entity {
	for name, s := range def {
		e.definition[name] = s
	}
	return e
}

// Definition returns the attribute definition to apply to instance: the
// inferred one when an InferFunc is installed, the static one otherwise.
func (e *Entity) Definition(instance map[string]any) map[string]Schema {
	if e.infer != nil {
		return e.infer(instance)
	}
	return e.definition
}

// ID derives the identifier for a plain view of a record. The custom IDFunc
// (when installed) runs first, then the configured identifier attribute, then
// the "id" fallback.
func (e *Entity) ID(value map[string]any) (ID, bool) {
	if e.idFunc != nil {
		if id, ok := e.idFunc(value); ok {
			return id, true
		}
		return ToID(value[defaultIDAttribute])
	}
	attr := e.idAttr
	if attr == "" {
		attr = defaultIDAttribute
	}
	if id, ok := ToID(value[attr]); ok {
		return id, true
	}
	if attr != defaultIDAttribute {
		return ToID(value[defaultIDAttribute])
	}
	return "", false
}
