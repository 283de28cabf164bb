package denorm_test

import (
	"testing"

	denorm "github.com/reoring/denorm"
	"github.com/reoring/denorm/schema"
)

func TestStoreFromJSON(t *testing.T) {
	data := []byte(`{
	  "users": {
	    "1": {"id": 1, "name": "Ann", "bestFriend": 2},
	    "2": {"id": 2, "name": "Bo", "bestFriend": 1}
	  }
	}`)
	store, err := denorm.StoreFromJSON(data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	raw, ok := store.Lookup("users", "1")
	if !ok {
		t.Fatalf("entity missing after ingestion")
	}
	if raw.(map[string]any)["name"] != "Ann" {
		t.Fatalf("unexpected entity: %#v", raw)
	}

	// numeric identifiers inside the data canonicalize to the same table key
	user := schema.NewEntity("users")
	user.Define(map[string]schema.Schema{"bestFriend": user})
	v := denorm.Denormalize(denorm.ID("1"), store, user)
	if v.(map[string]any)["bestFriend"].(map[string]any)["name"] != "Bo" {
		t.Fatalf("float64 reference did not resolve: %#v", v)
	}
}

func TestStoreFromJSON_Malformed(t *testing.T) {
	_, err := denorm.StoreFromJSON([]byte(`{"users": [1]}`))
	iss, ok := denorm.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != denorm.CodeParseError {
		t.Fatalf("unexpected code: %q", iss[0].Code)
	}
}

func TestStoreFromYAML(t *testing.T) {
	data := []byte(`
users:
  1:
    id: 1
    name: Ann
  t-7:
    id: t-7
    name: Bo
`)
	store, err := denorm.StoreFromYAML(data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := store.Lookup("users", "1"); !ok {
		t.Fatalf("numeric YAML key did not canonicalize")
	}
	if _, ok := store.Lookup("users", "t-7"); !ok {
		t.Fatalf("string key missing")
	}
}

func TestStore_Lookup(t *testing.T) {
	store := denorm.Store{"users": denorm.Table{"1": map[string]any{"id": 1}}}
	if _, ok := store.Lookup("users", "2"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	if _, ok := store.Lookup("posts", "1"); ok {
		t.Fatalf("expected miss for unknown type")
	}
}
