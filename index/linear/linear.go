// Package linear implements an exact brute-force index: every query
// tests every point against the geometry engine. It is the reference
// implementation the quadtree's pruned traversal is verified against,
// and a reasonable choice for very small point sets.
package linear

import (
	"iter"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
)

// Compile-time check to ensure Linear satisfies the Index interface.
var _ index.Index = (*Linear)(nil)

// Options contains configuration options for the linear index.
type Options struct {
	// Engine answers the geometric predicates used by overlap queries.
	// If nil, geometry.Default is used.
	Engine geometry.Engine
}

// Linear is an immutable brute-force index over a fixed set of points.
type Linear struct {
	entries []index.Entry
	bounds  geo.Box
	engine  geometry.Engine
}

// New builds a linear index over the given entries.
func New(entries []index.Entry, optFns ...func(o *Options)) (*Linear, error) {
	var opts Options

	for _, fn := range optFns {
		fn(&opts)
	}

	engine := opts.Engine
	if engine == nil {
		engine = geometry.Default
	}

	bounds, err := index.BoundsOf(entries)
	if err != nil {
		return nil, err
	}

	stored := make([]index.Entry, len(entries))
	copy(stored, entries)

	return &Linear{
		entries: stored,
		bounds:  bounds,
		engine:  engine,
	}, nil
}

// Bounds returns the minimal box enclosing all entries.
func (l *Linear) Bounds() geo.Box {
	return l.bounds
}

// Len returns the number of indexed entries.
func (l *Linear) Len() int {
	return len(l.entries)
}

// Contains reports whether p lies within the bounding box, edges included.
func (l *Linear) Contains(p geo.Point) bool {
	return l.bounds.Contains(p)
}

// Walk returns the entries in input order.
func (l *Linear) Walk() iter.Seq[index.Entry] {
	return func(yield func(index.Entry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Query tests every entry against the shape, in Walk order.
func (l *Linear) Query(shape geometry.Shape, opts *index.QueryOptions) iter.Seq[index.Entry] {
	var filter func(id uint32) bool
	if opts != nil {
		filter = opts.Filter
	}

	return func(yield func(index.Entry) bool) {
		for _, e := range l.entries {
			if filter != nil && !filter(e.ID) {
				continue
			}
			if !l.engine.ShapeContainsPoint(shape, e.Point) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Count returns the number of entries contained in the shape.
func (l *Linear) Count(shape geometry.Shape, opts *index.QueryOptions) int {
	count := 0
	for range l.Query(shape, opts) {
		count++
	}
	return count
}
