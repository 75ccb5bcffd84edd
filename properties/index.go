package properties

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Index is an inverted property index: field -> value -> bitmap of point
// IDs. It is populated during construction and frozen afterwards, so
// lookups are safe for concurrent use.
type Index struct {
	postings map[string]map[valueKey]*roaring.Bitmap
	byKey    map[string]*roaring.Bitmap // all IDs carrying the key
	docs     map[uint32]Properties
	frozen   bool
}

// NewIndex creates an empty property index.
func NewIndex() *Index {
	return &Index{
		postings: make(map[string]map[valueKey]*roaring.Bitmap),
		byKey:    make(map[string]*roaring.Bitmap),
		docs:     make(map[uint32]Properties),
	}
}

// Add records the properties for a point ID. It must only be called
// during construction, before Freeze.
func (ix *Index) Add(id uint32, props Properties) {
	if ix.frozen || len(props) == 0 {
		return
	}

	ix.docs[id] = props

	for key, raw := range props {
		keyBitmap := ix.byKey[key]
		if keyBitmap == nil {
			keyBitmap = roaring.New()
			ix.byKey[key] = keyBitmap
		}
		keyBitmap.Add(id)

		vk, ok := normalize(raw)
		if !ok {
			continue
		}

		values := ix.postings[key]
		if values == nil {
			values = make(map[valueKey]*roaring.Bitmap)
			ix.postings[key] = values
		}
		bitmap := values[vk]
		if bitmap == nil {
			bitmap = roaring.New()
			values[vk] = bitmap
		}
		bitmap.Add(id)
	}
}

// Freeze marks the index read-only. Further Add calls are ignored.
func (ix *Index) Freeze() {
	ix.frozen = true
}

// Get returns the properties stored for a point ID, or nil.
func (ix *Index) Get(id uint32) Properties {
	return ix.docs[id]
}

// Bitmap resolves a filter set to the bitmap of matching point IDs.
// All filters in the set are intersected (AND semantics). The returned
// bitmap must be treated as read-only.
func (ix *Index) Bitmap(fs *FilterSet) *roaring.Bitmap {
	if fs == nil || len(fs.Filters) == 0 {
		return nil
	}

	var result *roaring.Bitmap
	for _, f := range fs.Filters {
		b := ix.filterBitmap(f)
		if b.IsEmpty() {
			return b
		}
		if result == nil {
			result = b.Clone()
			continue
		}
		result.And(b)
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

func (ix *Index) filterBitmap(f Filter) *roaring.Bitmap {
	switch f.Operator {
	case OpExists:
		if b := ix.byKey[f.Key]; b != nil {
			return b
		}
		return roaring.New()
	case OpEqual:
		return ix.valueBitmap(f.Key, f.Value)
	case OpIn:
		union := roaring.New()
		for _, v := range f.Values {
			union.Or(ix.valueBitmap(f.Key, v))
		}
		return union
	default:
		return roaring.New()
	}
}

func (ix *Index) valueBitmap(key string, value any) *roaring.Bitmap {
	vk, ok := normalize(value)
	if !ok {
		return roaring.New()
	}
	if values := ix.postings[key]; values != nil {
		if b := values[vk]; b != nil {
			return b
		}
	}
	return roaring.New()
}
