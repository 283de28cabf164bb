package denorm_test

import (
	"fmt"

	denorm "github.com/reoring/denorm"
	"github.com/reoring/denorm/schema"
)

func ExampleDenormalize() {
	store := denorm.Store{
		"users": denorm.Table{
			"1": map[string]any{"id": 1, "name": "Ann", "bestFriend": 2},
			"2": map[string]any{"id": 2, "name": "Bo", "bestFriend": 1},
		},
	}
	user := schema.NewEntity("users")
	user.Define(map[string]schema.Schema{"bestFriend": user})

	v := denorm.Denormalize(denorm.ID("1"), store, user)
	ann := v.(map[string]any)
	bo := ann["bestFriend"].(map[string]any)
	fmt.Println(ann["name"], "->", bo["name"])
	// Output: Ann -> Bo
}

func ExampleCache_Denormalize() {
	store := denorm.Store{
		"users": denorm.Table{
			"1": map[string]any{"id": 1, "name": "Ann"},
		},
	}
	user := schema.NewEntity("users")

	cache := denorm.NewCache()
	v1, _ := cache.Denormalize(denorm.ID("1"), store, user)
	v2, _ := cache.Denormalize(denorm.ID("1"), store, user)
	fmt.Println(v1.(map[string]any)["name"], identical(v1, v2))
	// Output: Ann true
}
