// Package properties provides optional key/value properties for indexed
// points and a Roaring-bitmap inverted index for filtering overlap
// queries by property values.
package properties

// Properties is an optional mapping of property names to values attached
// to a point or feature (e.g. a display name). Supported value types are
// string, bool and the numeric types; numbers compare as float64.
type Properties map[string]any

// Get returns the value for the key and whether it is present.
func (p Properties) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// valueKey is the normalized, comparable form of a property value,
// used both for filter matching and as a postings-map key.
type valueKey struct {
	kind byte // 's', 'n', 'b'
	str  string
	num  float64
	b    bool
}

// normalize converts a raw property value to its comparable form.
// Unsupported types report ok=false and never match anything.
func normalize(v any) (valueKey, bool) {
	switch val := v.(type) {
	case string:
		return valueKey{kind: 's', str: val}, true
	case bool:
		return valueKey{kind: 'b', b: val}, true
	case float64:
		return valueKey{kind: 'n', num: val}, true
	case float32:
		return valueKey{kind: 'n', num: float64(val)}, true
	case int:
		return valueKey{kind: 'n', num: float64(val)}, true
	case int32:
		return valueKey{kind: 'n', num: float64(val)}, true
	case int64:
		return valueKey{kind: 'n', num: float64(val)}, true
	case uint32:
		return valueKey{kind: 'n', num: float64(val)}, true
	case uint64:
		return valueKey{kind: 'n', num: float64(val)}, true
	default:
		return valueKey{}, false
	}
}
