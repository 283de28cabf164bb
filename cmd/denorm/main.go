package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	denorm "github.com/reoring/denorm"
	"github.com/reoring/denorm/container"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "get":
		getCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "denorm CLI\n\nUsage:\n  denorm get -store store.json -schemas schemas.yaml -type users -id 1 [-memo]\n\nNotes:\n  - The store file may be JSON or YAML (by extension).\n  - The schemas file is a YAML schema document (entities/unions).")
}

func getCmd(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	var storePath, schemasPath, typeName, id string
	var memo bool
	fs.StringVar(&storePath, "store", "", "path to the normalized entity store (JSON or YAML)")
	fs.StringVar(&schemasPath, "schemas", "", "path to the YAML schema document")
	fs.StringVar(&typeName, "type", "", "declared schema name to denormalize against")
	fs.StringVar(&id, "id", "", "entity identifier")
	fs.BoolVar(&memo, "memo", false, "use the memoized path")
	_ = fs.Parse(args)
	if storePath == "" || schemasPath == "" || typeName == "" || id == "" {
		fs.Usage()
		os.Exit(2)
	}

	store := loadStore(storePath)

	schemasData, err := os.ReadFile(schemasPath)
	if err != nil {
		fatalf("read schemas: %v", err)
	}
	schemas, err := denorm.LoadSchemasYAML(schemasData)
	if err != nil {
		fatalf("load schemas: %v", err)
	}
	s, ok := schemas[typeName]
	if !ok {
		fatalf("schema %q is not declared in %s", typeName, schemasPath)
	}

	var result any
	if memo {
		cache := denorm.NewCache()
		result, err = cache.Denormalize(denorm.ID(id), store, s)
		if err != nil {
			fatalf("denormalize: %v", err)
		}
	} else {
		result = denorm.Denormalize(denorm.ID(id), store, s)
	}
	if n, ok := result.(container.Node); ok {
		result = n.ToPlain()
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}

func loadStore(path string) denorm.Store {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read store: %v", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	var store denorm.Store
	if ext == ".yaml" || ext == ".yml" {
		store, err = denorm.StoreFromYAML(data)
	} else {
		store, err = denorm.StoreFromJSON(data)
	}
	if err != nil {
		fatalf("load store: %v", err)
	}
	return store
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "denorm: "+format+"\n", args...)
	os.Exit(1)
}
