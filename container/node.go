package container

// Node is the capability interface for persistent key/value containers.
// Implementations are copy-on-write by construction: Set returns a new node
// and never mutates the receiver. The engine treats any value satisfying Node
// as a persistent container and everything else as plain data.
type Node interface {
	// Get returns the value stored under key, reporting whether it exists.
	Get(key string) (any, bool)
	// Set returns a new node with key bound to value; the receiver is unchanged.
	Set(key string, value any) Node
	// Keys returns the node's keys in ascending order.
	Keys() []string
	// ToPlain converts the node (recursively) into plain map/slice data.
	ToPlain() map[string]any
}

// IsNode reports whether v is a persistent container.
func IsNode(v any) bool {
	_, ok := v.(Node)
	return ok
}

// GetPath reads a nested value from either plain map data or a Node,
// descending one key per path element. ok is false when any step is missing
// or the current value cannot be descended into.
func GetPath(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		switch c := cur.(type) {
		case Node:
			next, ok := c.Get(key)
			if !ok {
				return nil, false
			}
			cur = next
		case map[string]any:
			next, ok := c[key]
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath writes a nested value and returns the updated container. Plain maps
// are shallow-copied along the path (the input is never mutated); Nodes use
// their own persistent update. Intermediate containers missing along the path
// are created as plain maps. Values that are neither maps nor Nodes are
// returned unchanged rather than overwritten.
func SetPath(v any, value any, path ...string) any {
	if len(path) == 0 {
		return value
	}
	key, rest := path[0], path[1:]
	switch c := v.(type) {
	case Node:
		child, _ := c.Get(key)
		return c.Set(key, SetPath(child, value, rest...))
	case map[string]any:
		out := make(map[string]any, len(c)+1)
		for k, vv := range c {
			out[k] = vv
		}
		out[key] = SetPath(out[key], value, rest...)
		return out
	case nil:
		return map[string]any{key: SetPath(nil, value, rest...)}
	default:
		return v
	}
}
