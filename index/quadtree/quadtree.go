// Package quadtree implements a point-region quadtree over a fixed set
// of points. The tree is built once, is immutable afterwards, and prunes
// overlap queries by testing node boxes against the query shape before
// descending.
package quadtree

import (
	"fmt"
	"iter"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
)

// Compile-time check to ensure Quadtree satisfies the Index interface.
var _ index.Index = (*Quadtree)(nil)

// Options contains configuration options for the quadtree.
type Options struct {
	// Capacity is the leaf capacity threshold: a leaf holding this many
	// entries subdivides on the next insertion. Must be positive.
	Capacity int

	// MaxDepth caps subdivision. A leaf at this depth accepts entries
	// past Capacity instead of splitting, which guarantees termination
	// for coincident points and degenerate boxes. Must be positive.
	MaxDepth int

	// Engine answers the geometric predicates used by overlap queries.
	// If nil, geometry.Default is used.
	Engine geometry.Engine
}

// DefaultOptions contains the default configuration options for the quadtree.
var DefaultOptions = Options{
	Capacity: 4,
	MaxDepth: 32,
}

// Quadtree is an immutable spatial index over a fixed set of points.
// All methods are safe for concurrent use after construction.
type Quadtree struct {
	root   *node
	bounds geo.Box
	engine geometry.Engine
	opts   Options
}

// New builds a quadtree over the given entries. The bounding box is the
// minimal box enclosing all entry coordinates and is never recomputed;
// entries are inserted one at a time in input order.
func New(entries []index.Entry, optFns ...func(o *Options)) (*Quadtree, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Capacity < 1 {
		return nil, fmt.Errorf("quadtree: capacity must be positive, got %d", opts.Capacity)
	}
	if opts.MaxDepth < 1 {
		return nil, fmt.Errorf("quadtree: max depth must be positive, got %d", opts.MaxDepth)
	}

	engine := opts.Engine
	if engine == nil {
		engine = geometry.Default
	}

	bounds, err := index.BoundsOf(entries)
	if err != nil {
		return nil, err
	}

	t := &Quadtree{
		root:   &node{box: bounds},
		bounds: bounds,
		engine: engine,
		opts:   opts,
	}

	for _, e := range entries {
		t.root.insert(e, opts.Capacity, opts.MaxDepth)
	}

	return t, nil
}

// Bounds returns the root bounding box.
func (t *Quadtree) Bounds() geo.Box {
	return t.bounds
}

// Len returns the number of indexed entries.
func (t *Quadtree) Len() int {
	return t.root.size
}

// Contains reports whether p lies within the root bounding box, edges
// included. It never consults the geometry engine.
func (t *Quadtree) Contains(p geo.Point) bool {
	return t.bounds.Contains(p)
}

// Walk returns a lazy, restartable depth-first sequence over every
// stored entry. Children are visited in NW, NE, SW, SE order and leaves
// yield their entries in insertion order, so the sequence is
// deterministic for a given tree.
func (t *Quadtree) Walk() iter.Seq[index.Entry] {
	return func(yield func(index.Entry) bool) {
		stack := []*node{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if n.leaf() {
				for _, e := range n.entries {
					if !yield(e) {
						return
					}
				}
				continue
			}

			// Push in reverse so NW pops first.
			for q := geo.SE; q >= geo.NW; q-- {
				stack = append(stack, n.children[q])
			}
		}
	}
}

// Query returns a lazy sequence of the entries contained in the shape,
// in Walk order. Subtrees whose box cannot intersect the shape are
// pruned without emitting candidates; subtrees whose box lies entirely
// inside the shape are emitted without per-point tests.
func (t *Quadtree) Query(shape geometry.Shape, opts *index.QueryOptions) iter.Seq[index.Entry] {
	var filter func(id uint32) bool
	if opts != nil {
		filter = opts.Filter
	}

	return func(yield func(index.Entry) bool) {
		t.queryNode(t.root, shape, filter, yield)
	}
}

func (t *Quadtree) queryNode(n *node, shape geometry.Shape, filter func(id uint32) bool, yield func(index.Entry) bool) bool {
	if n.size == 0 {
		return true
	}

	if t.engine.ShapeContainsBox(shape, n.box) {
		return n.emitAll(filter, yield)
	}

	if !t.engine.BoxIntersectsShape(n.box, shape) {
		return true
	}

	if n.leaf() {
		for _, e := range n.entries {
			if filter != nil && !filter(e.ID) {
				continue
			}
			if !t.engine.ShapeContainsPoint(shape, e.Point) {
				continue
			}
			if !yield(e) {
				return false
			}
		}
		return true
	}

	for _, c := range n.children {
		if !t.queryNode(c, shape, filter, yield) {
			return false
		}
	}
	return true
}

// Count returns the number of entries contained in the shape. Subtrees
// fully inside the shape contribute their size without per-point tests.
func (t *Quadtree) Count(shape geometry.Shape, opts *index.QueryOptions) int {
	var filter func(id uint32) bool
	if opts != nil {
		filter = opts.Filter
	}
	return t.countNode(t.root, shape, filter)
}

func (t *Quadtree) countNode(n *node, shape geometry.Shape, filter func(id uint32) bool) int {
	if n.size == 0 {
		return 0
	}

	if t.engine.ShapeContainsBox(shape, n.box) {
		if filter == nil {
			return n.size
		}
		count := 0
		n.emitAll(filter, func(index.Entry) bool {
			count++
			return true
		})
		return count
	}

	if !t.engine.BoxIntersectsShape(n.box, shape) {
		return 0
	}

	if n.leaf() {
		count := 0
		for _, e := range n.entries {
			if filter != nil && !filter(e.ID) {
				continue
			}
			if t.engine.ShapeContainsPoint(shape, e.Point) {
				count++
			}
		}
		return count
	}

	count := 0
	for _, c := range n.children {
		count += t.countNode(c, shape, filter)
	}
	return count
}
