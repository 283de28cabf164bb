package schema

// defaultTagAttribute is where normalized union references carry their
// discriminant.
const defaultTagAttribute = "schema"

// TagFunc derives the discriminant tag from a plain view of a normalized
// reference.
type TagFunc func(value map[string]any) (string, bool)

// Union describes a tagged choice among entity descriptors. A normalized
// union reference carries a discriminant tag alongside the identifier; the
// tag selects which variant entity the reference resolves against.
type Union struct {
	mapping map[string]*Entity
	tagAttr string
	tagFunc TagFunc
}

var _ Schema = (*Union)(nil)

func (*Union) schemaVariant() {}

// UnionOption configures union construction.
type UnionOption func(*Union)

// WithTagAttribute selects the attribute the discriminant is read from.
// The default is "schema".
func WithTagAttribute(name string) UnionOption {
	return func(u *Union) { u.tagAttr = name }
}

// WithTagFunc installs a custom discriminant derivation.
func WithTagFunc(fn TagFunc) UnionOption {
	return func(u *Union) { u.tagFunc = fn }
}

// NewUnion returns a union descriptor over the tag-to-entity mapping.
func NewUnion(mapping map[string]*Entity, opts ...UnionOption) *Union {
	u := &Union{mapping: mapping, tagAttr: defaultTagAttribute}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Tag derives the discriminant tag from a plain view of a reference.
func (u *Union) Tag(value map[string]any) (string, bool) {
	if u.tagFunc != nil {
		return u.tagFunc(value)
	}
	tag, ok := value[u.tagAttr].(string)
	return tag, ok && tag != ""
}

// Variant returns the entity descriptor registered under tag.
func (u *Union) Variant(tag string) (*Entity, bool) {
	e, ok := u.mapping[tag]
	return e, ok
}
