package properties

// Operator identifies a filter comparison.
type Operator int

const (
	// OpEqual matches when the property value equals the filter value.
	OpEqual Operator = iota
	// OpIn matches when the property value equals any of the filter values.
	OpIn
	// OpExists matches when the property key is present, whatever its value.
	OpExists
)

// Filter is a single property condition.
type Filter struct {
	Key      string
	Operator Operator
	Value    any
	Values   []any // used by OpIn
}

// Eq creates an equality filter.
func Eq(key string, value any) Filter {
	return Filter{Key: key, Operator: OpEqual, Value: value}
}

// In creates a membership filter.
func In(key string, values ...any) Filter {
	return Filter{Key: key, Operator: OpIn, Values: values}
}

// Exists creates a presence filter.
func Exists(key string) Filter {
	return Filter{Key: key, Operator: OpExists}
}

// Matches checks if the provided properties match this filter.
func (f Filter) Matches(props Properties) bool {
	raw, ok := props.Get(f.Key)
	if !ok {
		return false
	}

	switch f.Operator {
	case OpExists:
		return true
	case OpEqual:
		have, ok1 := normalize(raw)
		want, ok2 := normalize(f.Value)
		return ok1 && ok2 && have == want
	case OpIn:
		have, ok1 := normalize(raw)
		if !ok1 {
			return false
		}
		for _, v := range f.Values {
			if want, ok2 := normalize(v); ok2 && have == want {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// FilterSet combines filters with AND semantics.
type FilterSet struct {
	Filters []Filter
}

// And creates a FilterSet from the given filters.
func And(filters ...Filter) *FilterSet {
	return &FilterSet{Filters: filters}
}

// Matches checks if the provided properties match all filters in the set.
func (fs *FilterSet) Matches(props Properties) bool {
	for _, f := range fs.Filters {
		if !f.Matches(props) {
			return false
		}
	}
	return true
}
