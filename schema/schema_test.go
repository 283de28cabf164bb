package schema_test

import (
	"testing"

	"github.com/reoring/denorm/schema"
)

func TestToID_Canonicalization(t *testing.T) {
	cases := []struct {
		in   any
		want schema.ID
		ok   bool
	}{
		{"abc", "abc", true},
		{"", "", false},
		{1, "1", true},
		{int64(42), "42", true},
		{float64(7), "7", true}, // JSON numbers arrive as float64
		{float64(1.5), "1.5", true},
		{nil, "", false},
		{true, "", false},
		{map[string]any{}, "", false},
	}
	for _, tc := range cases {
		got, ok := schema.ToID(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ToID(%#v) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEntity_ID_DefaultAttribute(t *testing.T) {
	e := schema.NewEntity("users")
	id, ok := e.ID(map[string]any{"id": 7})
	if !ok || id != "7" {
		t.Fatalf("unexpected id: (%q, %v)", id, ok)
	}
	if _, ok := e.ID(map[string]any{"name": "Ann"}); ok {
		t.Fatalf("expected no identifier without an id attribute")
	}
}

func TestEntity_ID_CustomAttribute_FallsBackToID(t *testing.T) {
	e := schema.NewEntity("tracks", schema.WithIDAttribute("slug"))
	if id, ok := e.ID(map[string]any{"slug": "t-7"}); !ok || id != "t-7" {
		t.Fatalf("unexpected id: (%q, %v)", id, ok)
	}
	if id, ok := e.ID(map[string]any{"id": 3}); !ok || id != "3" {
		t.Fatalf("expected fallback to id attribute, got (%q, %v)", id, ok)
	}
}

func TestEntity_ID_CustomFunc(t *testing.T) {
	e := schema.NewEntity("users", schema.WithIDFunc(func(v map[string]any) (schema.ID, bool) {
		s, _ := v["uuid"].(string)
		return schema.ID(s), s != ""
	}))
	if id, ok := e.ID(map[string]any{"uuid": "u-1"}); !ok || id != "u-1" {
		t.Fatalf("unexpected id: (%q, %v)", id, ok)
	}
	// derivation yields nothing: fall back to the id attribute
	if id, ok := e.ID(map[string]any{"id": 5}); !ok || id != "5" {
		t.Fatalf("expected id fallback, got (%q, %v)", id, ok)
	}
}

func TestEntity_Define_SelfReference(t *testing.T) {
	user := schema.NewEntity("users")
	user.Define(map[string]schema.Schema{"bestFriend": user})
	def := user.Definition(nil)
	if def["bestFriend"] != schema.Schema(user) {
		t.Fatalf("self reference not preserved: %#v", def)
	}
}

func TestEntity_InferredDefinition(t *testing.T) {
	other := schema.NewEntity("others")
	e := schema.NewEntity("events", schema.WithInferredDefinition(func(instance map[string]any) map[string]schema.Schema {
		if instance["kind"] == "ref" {
			return map[string]schema.Schema{"target": other}
		}
		return nil
	}))
	if def := e.Definition(map[string]any{"kind": "ref"}); def["target"] == nil {
		t.Fatalf("inferred definition missing: %#v", def)
	}
	if def := e.Definition(map[string]any{"kind": "plain"}); len(def) != 0 {
		t.Fatalf("expected empty definition, got %#v", def)
	}
}

func TestUnion_TagAndVariant(t *testing.T) {
	user := schema.NewEntity("users")
	post := schema.NewEntity("posts")
	u := schema.NewUnion(map[string]*schema.Entity{"users": user, "posts": post})

	tag, ok := u.Tag(map[string]any{"id": 1, "schema": "posts"})
	if !ok || tag != "posts" {
		t.Fatalf("unexpected tag: (%q, %v)", tag, ok)
	}
	if v, ok := u.Variant(tag); !ok || v != post {
		t.Fatalf("unexpected variant: (%v, %v)", v, ok)
	}
	if _, ok := u.Tag(map[string]any{"id": 1}); ok {
		t.Fatalf("expected no tag without a discriminant")
	}
	if _, ok := u.Variant("comments"); ok {
		t.Fatalf("expected no variant for an unregistered tag")
	}
}

func TestUnion_CustomTagAttributeAndFunc(t *testing.T) {
	user := schema.NewEntity("users")
	u := schema.NewUnion(map[string]*schema.Entity{"users": user}, schema.WithTagAttribute("type"))
	if tag, ok := u.Tag(map[string]any{"type": "users"}); !ok || tag != "users" {
		t.Fatalf("tag attribute not honored: (%q, %v)", tag, ok)
	}

	u = schema.NewUnion(map[string]*schema.Entity{"users": user}, schema.WithTagFunc(func(v map[string]any) (string, bool) {
		if _, ok := v["email"]; ok {
			return "users", true
		}
		return "", false
	}))
	if tag, ok := u.Tag(map[string]any{"email": "a@b"}); !ok || tag != "users" {
		t.Fatalf("tag func not honored: (%q, %v)", tag, ok)
	}
}
