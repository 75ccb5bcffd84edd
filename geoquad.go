// Package geoquad provides an embedded quadtree index over a fixed set
// of 2D points.
//
// The tree is built once from an input point sequence and is immutable
// afterwards:
//
//   - the root bounding box is the minimal box enclosing all input points
//   - points are inserted in input order; a full leaf subdivides into
//     four quadrants up to a configurable depth cap
//   - overlap queries recurse top-down and prune subtrees whose box
//     cannot intersect the query shape
//
// Exact geometric predicates (point-in-polygon, box/polygon overlap) are
// answered by a pluggable geometry engine; the default engine is backed
// by github.com/paulmach/orb.
//
// # Quick Start
//
// Build a tree and run an overlap query:
//
//	points := []geoquad.PointWithData[string]{
//	    {Point: geo.Pt(0, 0), Data: "a"},
//	    {Point: geo.Pt(0, 1), Data: "b"},
//	    {Point: geo.Pt(5, 1), Data: "c", Properties: properties.Properties{"name": "east"}},
//	}
//	qt, err := geoquad.New(points, geoquad.WithCapacity(4))
//	if err != nil {
//	    panic(err)
//	}
//
//	feature, _ := geoquad.NewBoxFeature(geo.NewBox(3, 0, 6, 2))
//	matches, _ := qt.GetOverlappingPoints(feature)
//
// Stream results with early termination:
//
//	for p, err := range qt.GetOverlappingPointsStream(feature) {
//	    if err != nil {
//	        break
//	    }
//	    process(p)
//	}
//
// Filter candidates by property before the geometric test:
//
//	matches, _ := qt.GetOverlappingPoints(feature, func(o *geoquad.QueryOptions) {
//	    o.Filter = properties.And(properties.Eq("name", "east"))
//	})
//
// After construction all query methods are safe for concurrent use.
package geoquad

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/index"
	"github.com/hupe1980/geoquad/index/quadtree"
	"github.com/hupe1980/geoquad/properties"
)

// PointWithData represents a point along with associated data and
// optional properties.
type PointWithData[T any] struct {
	Point      geo.Point
	Data       T
	Properties properties.Properties
}

// QuadTree is an immutable spatial index over a fixed set of points with
// attached data. Construction is one-shot and sequential; afterwards the
// structure is read-only and all methods are safe for concurrent use.
type QuadTree[T any] struct {
	index   *quadtree.Quadtree
	points  []PointWithData[T]
	props   *properties.Index
	logger  *Logger
	metrics MetricsCollector
}

// New builds a QuadTree over the given points. Point IDs are assigned in
// input order starting at zero; duplicate coordinates are distinct
// points. The input slice is copied.
//
// New fails with ErrEmptyInput for an empty sequence and with
// ErrInvalidPoint for NaN or infinite coordinates. A degenerate bounding
// box (all points collinear or coincident) is accepted and logged as a
// warning.
func New[T any](points []PointWithData[T], optFns ...Option) (*QuadTree[T], error) {
	start := time.Now()
	ctx := context.Background()
	opts := applyOptions(optFns)

	entries := make([]index.Entry, len(points))
	for i, p := range points {
		entries[i] = index.Entry{ID: uint32(i), Point: p.Point}
	}

	idx, err := quadtree.New(entries, func(o *quadtree.Options) {
		o.Capacity = opts.capacity
		o.MaxDepth = opts.maxDepth
		o.Engine = opts.engine
	})
	if err != nil {
		err = translateError(err)
		opts.metrics.RecordBuild(len(points), time.Since(start), err)
		opts.logger.LogBuild(ctx, len(points), geo.Box{}, err)
		return nil, err
	}

	var props *properties.Index
	if opts.propertyIndex {
		props = properties.NewIndex()
		for i, p := range points {
			props.Add(uint32(i), p.Properties)
		}
		props.Freeze()
	}

	stored := make([]PointWithData[T], len(points))
	copy(stored, points)

	qt := &QuadTree[T]{
		index:   idx,
		points:  stored,
		props:   props,
		logger:  opts.logger,
		metrics: opts.metrics,
	}

	if idx.Bounds().IsDegenerate() {
		qt.logger.LogDegenerateBounds(ctx, idx.Bounds())
	}

	qt.metrics.RecordBuild(len(points), time.Since(start), nil)
	qt.logger.LogBuild(ctx, len(points), idx.Bounds(), nil)
	return qt, nil
}

// Bounds returns the root bounding box: the minimal axis-aligned box
// covering the full input point set, computed once at construction.
func (qt *QuadTree[T]) Bounds() geo.Box {
	return qt.index.Bounds()
}

// Len returns the number of indexed points.
func (qt *QuadTree[T]) Len() int {
	return qt.index.Len()
}

// Stats returns statistics about the underlying quadtree.
func (qt *QuadTree[T]) Stats() quadtree.Stats {
	return qt.index.Stats()
}

// ContainsPoint reports whether p lies within the root bounding box,
// boundaries included. It is a coarse extent check against the indexed
// area, not a lookup of stored points, and never consults the geometry
// engine.
func (qt *QuadTree[T]) ContainsPoint(p geo.Point) bool {
	return qt.index.Contains(p)
}

// Get retrieves a stored point by ID.
func (qt *QuadTree[T]) Get(id uint32) (PointWithData[T], error) {
	if int(id) >= len(qt.points) {
		var zero PointWithData[T]
		return zero, ErrNotFound
	}
	return qt.points[id], nil
}

// Walk returns a lazy, restartable sequence over every stored point.
// The traversal is depth-first with children visited in NW, NE, SW, SE
// order; leaves yield their points in insertion order. Every point
// supplied at construction appears exactly once. The order is
// deterministic for a given tree but is an artifact of subdivision, not
// the input order.
func (qt *QuadTree[T]) Walk() iter.Seq[PointWithData[T]] {
	return func(yield func(PointWithData[T]) bool) {
		start := time.Now()
		count := 0
		for e := range qt.index.Walk() {
			count++
			if !yield(qt.points[e.ID]) {
				return
			}
		}
		qt.metrics.RecordWalk(count, time.Since(start))
	}
}

// QueryOptions contains options for overlap queries.
type QueryOptions struct {
	// Filter restricts candidates to points whose properties match the
	// filter set. When the property index is enabled the filter resolves
	// to a bitmap before any geometric test runs.
	Filter *properties.FilterSet

	// FilterFunc restricts candidates to IDs for which it returns true.
	FilterFunc func(id uint32) bool
}

// GetOverlappingPoints returns the stored points geometrically contained
// in the feature's shape, in Walk order, each with its original data and
// properties. Subtrees whose box cannot intersect the shape are pruned;
// the result is identical to testing every stored point directly.
//
// Points exactly on the shape's boundary follow the engine's boundary
// policy; the default engine excludes them.
func (qt *QuadTree[T]) GetOverlappingPoints(feature *Feature, optFns ...func(o *QueryOptions)) ([]PointWithData[T], error) {
	start := time.Now()
	ctx := context.Background()

	qopts, err := qt.queryOptions(feature, optFns)
	if err != nil {
		qt.metrics.RecordQuery(0, time.Since(start), err)
		qt.logger.LogQuery(ctx, "overlap", 0, err)
		return nil, err
	}

	results := make([]PointWithData[T], 0)
	for e := range qt.index.Query(feature.Shape, qopts) {
		results = append(results, qt.points[e.ID])
	}

	qt.metrics.RecordQuery(len(results), time.Since(start), nil)
	qt.logger.LogQuery(ctx, "overlap", len(results), nil)
	return results, nil
}

// GetOverlappingPointsStream returns an iterator over the points
// contained in the feature's shape, in Walk order. The iterator supports
// early termination - stop iterating to cancel.
//
// This is more memory-efficient than GetOverlappingPoints for large
// result sets.
func (qt *QuadTree[T]) GetOverlappingPointsStream(feature *Feature, optFns ...func(o *QueryOptions)) iter.Seq2[PointWithData[T], error] {
	return func(yield func(PointWithData[T], error) bool) {
		start := time.Now()
		ctx := context.Background()

		qopts, err := qt.queryOptions(feature, optFns)
		if err != nil {
			qt.metrics.RecordQuery(0, time.Since(start), err)
			qt.logger.LogQuery(ctx, "overlap-stream", 0, err)
			var zero PointWithData[T]
			yield(zero, err)
			return
		}

		count := 0
		for e := range qt.index.Query(feature.Shape, qopts) {
			count++
			if !yield(qt.points[e.ID], nil) {
				qt.metrics.RecordQuery(count, time.Since(start), nil)
				qt.logger.LogQuery(ctx, "overlap-stream", count, nil)
				return
			}
		}

		qt.metrics.RecordQuery(count, time.Since(start), nil)
		qt.logger.LogQuery(ctx, "overlap-stream", count, nil)
	}
}

// CountOverlappingPoints returns the number of stored points contained
// in the feature's shape. Subtrees fully inside the shape contribute
// their point counts without per-point geometric tests, so counting is
// cheaper than materializing the matches.
func (qt *QuadTree[T]) CountOverlappingPoints(feature *Feature, optFns ...func(o *QueryOptions)) (int, error) {
	start := time.Now()
	ctx := context.Background()

	qopts, err := qt.queryOptions(feature, optFns)
	if err != nil {
		qt.metrics.RecordQuery(0, time.Since(start), err)
		qt.logger.LogQuery(ctx, "count", 0, err)
		return 0, err
	}

	count := qt.index.Count(feature.Shape, qopts)

	qt.metrics.RecordQuery(count, time.Since(start), nil)
	qt.logger.LogQuery(ctx, "count", count, nil)
	return count, nil
}

// BatchOverlap runs one overlap query per feature concurrently over the
// immutable tree and returns the results in feature order. Concurrency
// is bounded by GOMAXPROCS. The first failing query cancels the rest.
func (qt *QuadTree[T]) BatchOverlap(ctx context.Context, features []*Feature, optFns ...func(o *QueryOptions)) ([][]PointWithData[T], error) {
	results := make([][]PointWithData[T], len(features))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range features {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, err := qt.GetOverlappingPoints(f, optFns...)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		qt.logger.LogBatch(ctx, len(features), err)
		return nil, err
	}

	qt.logger.LogBatch(ctx, len(features), nil)
	return results, nil
}

// queryOptions validates the feature and composes the candidate filter
// for the underlying index.
func (qt *QuadTree[T]) queryOptions(feature *Feature, optFns []func(o *QueryOptions)) (*index.QueryOptions, error) {
	if feature == nil || feature.Shape.IsZero() {
		return nil, translateError(&geometry.ErrInvalidGeometry{Reason: "feature has no shape"})
	}

	opts := QueryOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var filters []func(id uint32) bool

	if opts.Filter != nil && len(opts.Filter.Filters) > 0 {
		if qt.props != nil {
			bitmap := qt.props.Bitmap(opts.Filter)
			filters = append(filters, bitmap.Contains)
		} else {
			fs := opts.Filter
			filters = append(filters, func(id uint32) bool {
				return fs.Matches(qt.points[id].Properties)
			})
		}
	}

	if opts.FilterFunc != nil {
		filters = append(filters, opts.FilterFunc)
	}

	switch len(filters) {
	case 0:
		return nil, nil
	case 1:
		return &index.QueryOptions{Filter: filters[0]}, nil
	default:
		return &index.QueryOptions{Filter: func(id uint32) bool {
			for _, f := range filters {
				if !f(id) {
					return false
				}
			}
			return true
		}}, nil
	}
}
