package container_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/denorm/container"
)

func TestGetPath_PlainAndNode(t *testing.T) {
	plain := map[string]any{"a": map[string]any{"b": 1}}
	if v, ok := container.GetPath(plain, "a", "b"); !ok || v != 1 {
		t.Fatalf("unexpected result: (%#v, %v)", v, ok)
	}
	if _, ok := container.GetPath(plain, "a", "missing"); ok {
		t.Fatalf("expected missing path")
	}
	if _, ok := container.GetPath(1, "a"); ok {
		t.Fatalf("expected no descent into a scalar")
	}

	node := container.FromPlain(map[string]any{"a": map[string]any{"b": 1}})
	if v, ok := container.GetPath(node, "a", "b"); !ok || v != 1 {
		t.Fatalf("unexpected node result: (%#v, %v)", v, ok)
	}
}

func TestSetPath_CopyOnWrite(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b": 1}, "keep": "x"}
	out := container.SetPath(in, 2, "a", "b")

	want := map[string]any{"a": map[string]any{"b": 2}, "keep": "x"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	// the input keeps its old value
	if in["a"].(map[string]any)["b"] != 1 {
		t.Fatalf("input was mutated: %#v", in)
	}
}

func TestSetPath_CreatesIntermediates(t *testing.T) {
	out := container.SetPath(nil, 1, "a", "b")
	want := map[string]any{"a": map[string]any{"b": 1}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestMap_PersistentSet(t *testing.T) {
	m0 := container.FromPlain(map[string]any{"name": "Ann"})
	m1 := m0.Set("name", "Bo")

	if v, _ := m0.Get("name"); v != "Ann" {
		t.Fatalf("older version changed: %#v", v)
	}
	if v, _ := m1.Get("name"); v != "Bo" {
		t.Fatalf("newer version missing update: %#v", v)
	}
}

func TestMap_PlainRoundTrip(t *testing.T) {
	src := map[string]any{
		"id":   1,
		"tags": []any{"a", "b"},
		"meta": map[string]any{"depth": 2},
	}
	got := container.FromPlain(src).ToPlain()
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_KeysSorted(t *testing.T) {
	m := container.FromPlain(map[string]any{"b": 1, "a": 2, "c": 3})
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, m.Keys()); diff != "" {
		t.Fatalf("keys not sorted (-want +got):\n%s", diff)
	}
}

func TestIsNode(t *testing.T) {
	if container.IsNode(map[string]any{}) {
		t.Fatalf("plain maps are not nodes")
	}
	if !container.IsNode(container.NewMap()) {
		t.Fatalf("Map should be a node")
	}
}
