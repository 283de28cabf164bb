package denorm

import (
	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"
)

// StoreFromJSON decodes a normalized entity store from JSON. The document
// must be an object of objects: type key to identifier to raw entity data.
// Identifiers are canonicalized through ToID.
func StoreFromJSON(data []byte) (Store, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return storeFromRaw(raw)
}

// StoreFromYAML decodes a normalized entity store from YAML with the same
// document shape as StoreFromJSON.
func StoreFromYAML(data []byte) (Store, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return storeFromRaw(raw)
}

func storeFromRaw(raw map[string]map[string]any) (Store, error) {
	store := make(Store, len(raw))
	var iss Issues
	for key, tb := range raw {
		table := make(Table, len(tb))
		for rawID, entity := range tb {
			id, ok := ToID(rawID)
			if !ok {
				iss = AppendIssues(iss, Issue{Path: "/" + key, Code: CodeParseError, Message: "table key is not an identifier", Hint: "identifiers are non-empty strings or numbers"})
				continue
			}
			table[id] = entity
		}
		store[key] = table
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return store, nil
}
