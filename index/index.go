// Package index provides the interface and shared types for spatial
// point indexes.
package index

import (
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
)

var (
	// ErrEmptyInput is returned when an index is built from zero points.
	// An empty point set has no well-defined bounding box.
	ErrEmptyInput = errors.New("at least one point is required")
)

// ErrInvalidPoint is a named error type for a point with non-finite
// coordinates. Such points are rejected at construction, never dropped.
type ErrInvalidPoint struct {
	ID    uint32    // Storage ID of the offending point
	Point geo.Point // The offending coordinates
}

// Error returns the error message for the invalid point.
func (e *ErrInvalidPoint) Error() string {
	return fmt.Sprintf("invalid point %d: non-finite coordinates %s", e.ID, e.Point)
}

// Entry is a stored point: a dense storage ID plus its coordinates.
// IDs are assigned in input order at construction; duplicate coordinates
// are distinct entries.
type Entry struct {
	ID    uint32
	Point geo.Point
}

// QueryOptions contains options for overlap queries.
type QueryOptions struct {
	// Filter restricts candidates to IDs for which it returns true.
	// It runs before the geometric containment test.
	Filter func(id uint32) bool
}

// Index is a read-only spatial index over a fixed set of points.
// Implementations are immutable after construction, so all methods are
// safe for concurrent use.
type Index interface {
	// Bounds returns the minimal box enclosing the full input point set,
	// computed once at construction.
	Bounds() geo.Box

	// Len returns the number of indexed points.
	Len() int

	// Contains reports whether p lies within Bounds, edges included.
	// It is a coarse extent check, not a stored-point lookup.
	Contains(p geo.Point) bool

	// Walk returns a lazy, restartable sequence over every stored entry.
	// Each entry appears exactly once; order is deterministic for a
	// given index.
	Walk() iter.Seq[Entry]

	// Query returns a lazy sequence of the entries contained in the
	// shape, in Walk order.
	Query(shape geometry.Shape, opts *QueryOptions) iter.Seq[Entry]

	// Count returns the number of entries contained in the shape.
	Count(shape geometry.Shape, opts *QueryOptions) int
}

// BoundsOf validates entries and computes their minimal bounding box.
// Shared by index implementations so they agree on construction errors.
func BoundsOf(entries []Entry) (geo.Box, error) {
	if len(entries) == 0 {
		return geo.Box{}, ErrEmptyInput
	}

	first := entries[0].Point
	if !first.IsFinite() {
		return geo.Box{}, &ErrInvalidPoint{ID: entries[0].ID, Point: first}
	}

	bounds := geo.Box{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, e := range entries[1:] {
		if !e.Point.IsFinite() {
			return geo.Box{}, &ErrInvalidPoint{ID: e.ID, Point: e.Point}
		}
		bounds = bounds.Extend(e.Point)
	}

	return bounds, nil
}
