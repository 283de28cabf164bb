package denorm

import (
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/reoring/denorm/schema"
)

// yamlSchemaDoc is the wire shape of a schema document.
type yamlSchemaDoc struct {
	Entities map[string]yamlEntity `yaml:"entities"`
	Unions   map[string]yamlUnion  `yaml:"unions"`
}

type yamlEntity struct {
	IDAttribute string            `yaml:"idAttribute"`
	Definition  map[string]string `yaml:"definition"`
}

type yamlUnion struct {
	TagAttribute string            `yaml:"tagAttribute"`
	Variants     map[string]string `yaml:"variants"`
}

// LoadSchemasYAML builds a named descriptor set from a YAML schema document.
// Entities declare their store type key by name, an optional idAttribute, and
// a definition whose values reference other declarations: "name" for an
// entity or union, "[name]" for an ordered collection of it, "{name}" for a
// keyed collection of it. Unions map discriminant tags to entity names.
//
// Dangling references are reported as Issues; self and mutual references are
// fine (entities are created before definitions resolve).
func LoadSchemasYAML(data []byte) (map[string]schema.Schema, error) {
	var doc yamlSchemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}

	var iss Issues
	entities := make(map[string]*schema.Entity, len(doc.Entities))
	for name, ye := range doc.Entities {
		var opts []schema.EntityOption
		if ye.IDAttribute != "" {
			opts = append(opts, schema.WithIDAttribute(ye.IDAttribute))
		}
		entities[name] = schema.NewEntity(name, opts...)
	}

	unions := make(map[string]*schema.Union, len(doc.Unions))
	for name, yu := range doc.Unions {
		if _, dup := entities[name]; dup {
			iss = AppendIssues(iss, Issue{Path: "/unions/" + name, Code: CodeParseError, Message: "name declared as both entity and union"})
			continue
		}
		mapping := make(map[string]*schema.Entity, len(yu.Variants))
		for tag, target := range yu.Variants {
			e, ok := entities[target]
			if !ok {
				iss = AppendIssues(iss, Issue{Path: "/unions/" + name + "/variants/" + tag, Code: CodeUnknownReference, Message: "unknown entity: " + target})
				continue
			}
			mapping[tag] = e
		}
		var opts []schema.UnionOption
		if yu.TagAttribute != "" {
			opts = append(opts, schema.WithTagAttribute(yu.TagAttribute))
		}
		unions[name] = schema.NewUnion(mapping, opts...)
	}

	lookup := func(name string) (schema.Schema, bool) {
		if e, ok := entities[name]; ok {
			return e, true
		}
		if u, ok := unions[name]; ok {
			return u, true
		}
		return nil, false
	}

	for name, ye := range doc.Entities {
		def := make(map[string]schema.Schema, len(ye.Definition))
		for attr, ref := range ye.Definition {
			s, ok := resolveRef(ref, lookup)
			if !ok {
				iss = AppendIssues(iss, Issue{Path: "/entities/" + name + "/definition/" + attr, Code: CodeUnknownReference, Message: "unknown reference: " + ref})
				continue
			}
			def[attr] = s
		}
		entities[name].Define(def)
	}

	if len(iss) > 0 {
		return nil, iss
	}
	out := make(map[string]schema.Schema, len(entities)+len(unions))
	for name, e := range entities {
		out[name] = e
	}
	for name, u := range unions {
		out[name] = u
	}
	return out, nil
}

// resolveRef interprets the reference syntax: "name", "[name]", "{name}".
func resolveRef(ref string, lookup func(string) (schema.Schema, bool)) (schema.Schema, bool) {
	switch {
	case strings.HasPrefix(ref, "[") && strings.HasSuffix(ref, "]"):
		s, ok := lookup(strings.TrimSuffix(strings.TrimPrefix(ref, "["), "]"))
		if !ok {
			return nil, false
		}
		return schema.ArrayOf(s), true
	case strings.HasPrefix(ref, "{") && strings.HasSuffix(ref, "}"):
		s, ok := lookup(strings.TrimSuffix(strings.TrimPrefix(ref, "{"), "}"))
		if !ok {
			return nil, false
		}
		return schema.ValuesOf(s), true
	default:
		return lookup(ref)
	}
}
