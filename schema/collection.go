package schema

// Array describes an ordered sequence whose members all share one element
// descriptor. Reconstruction preserves length and order.
type Array struct {
	elem Schema
}

var _ Schema = (*Array)(nil)

func (*Array) schemaVariant() {}

// ArrayOf returns an ordered-collection descriptor over elem.
func ArrayOf(elem Schema) *Array {
	return &Array{elem: elem}
}

// Elem returns the element descriptor.
func (a *Array) Elem() Schema { return a.elem }

// Values describes a mapping from arbitrary keys to members sharing one
// element descriptor. Reconstruction preserves the key set.
type Values struct {
	elem Schema
}

var _ Schema = (*Values)(nil)

func (*Values) schemaVariant() {}

// ValuesOf returns a keyed-collection descriptor over elem.
func ValuesOf(elem Schema) *Values {
	return &Values{elem: elem}
}

// Elem returns the element descriptor.
func (v *Values) Elem() Schema { return v.elem }
