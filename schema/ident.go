package schema

import "strconv"

// ID is a canonical entity identifier. Raw stores key entities by string or
// number; both forms canonicalize to the same ID so that a float64 1 read from
// JSON and the string "1" address the same entity.
type ID string

// ToID canonicalizes a raw identifier value. ok is false when v is not an
// identifier-shaped value (nil, booleans, containers, empty strings).
func ToID(v any) (ID, bool) {
	switch x := v.(type) {
	case ID:
		return x, x != ""
	case string:
		return ID(x), x != ""
	case int:
		return ID(strconv.Itoa(x)), true
	case int32:
		return ID(strconv.FormatInt(int64(x), 10)), true
	case int64:
		return ID(strconv.FormatInt(x, 10)), true
	case uint64:
		return ID(strconv.FormatUint(x, 10)), true
	case float64:
		// JSON decoding yields float64 for every number; keep integral
		// identifiers free of a trailing fraction.
		if x == float64(int64(x)) {
			return ID(strconv.FormatInt(int64(x), 10)), true
		}
		return ID(strconv.FormatFloat(x, 'g', -1, 64)), true
	case float32:
		return ToID(float64(x))
	default:
		return "", false
	}
}
