package schema

// Schema is the closed set of descriptor variants. Only types in this package
// implement it; the engine dispatches over the concrete type.
type Schema interface {
	schemaVariant()
}

// Object is a plain attribute-to-descriptor map. Values matched against an
// Object are reconstructed attribute by attribute without entity resolution or
// caching.
type Object map[string]Schema

func (Object) schemaVariant() {}
