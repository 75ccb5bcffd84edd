// Package geometry defines the capability boundary between the spatial
// indexes and the computational-geometry library that answers exact
// predicates. Indexes only decide which candidates to test; the Engine
// decides whether a box or point actually overlaps a shape.
package geometry

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/hupe1980/geoquad/geo"
)

// ErrInvalidGeometry indicates a shape specification the engine cannot
// build a valid shape from. The core never attempts to repair shapes.
type ErrInvalidGeometry struct {
	Reason string
}

// Error returns the error message for the invalid geometry.
func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// Shape is an opaque query geometry produced by one of the shape
// constructors. A Shape is immutable and safe for concurrent use.
type Shape struct {
	geom orb.Geometry
}

// IsZero reports whether the shape was never constructed.
func (s Shape) IsZero() bool {
	return s.geom == nil
}

// Bound returns the axis-aligned bounding box of the shape.
func (s Shape) Bound() geo.Box {
	if s.geom == nil {
		return geo.Box{}
	}
	b := s.geom.Bound()
	return geo.Box{MinX: b.Min.X(), MinY: b.Min.Y(), MaxX: b.Max.X(), MaxY: b.Max.Y()}
}

// Geometry exposes the underlying orb geometry. Callers must treat it
// as read-only.
func (s Shape) Geometry() orb.Geometry {
	return s.geom
}

// Engine answers the exact geometric predicates the indexes need.
//
// Implementations must be safe for concurrent read-only use; queries on a
// frozen index may run from multiple goroutines.
type Engine interface {
	// BoxIntersectsShape reports whether the box and the shape share at
	// least one point. It must never report false for a box that truly
	// intersects the shape; reporting true for a disjoint pair only costs
	// an unnecessary descent.
	BoxIntersectsShape(box geo.Box, shape Shape) bool

	// ShapeContainsBox reports whether every point of the box satisfies
	// the engine's containment policy for the shape. It may be
	// conservative (report false for a contained box) but must never
	// report true for a box that is not fully contained.
	ShapeContainsBox(shape Shape, box geo.Box) bool

	// ShapeContainsPoint reports whether the point is contained in the
	// shape under the engine's boundary policy.
	ShapeContainsPoint(shape Shape, p geo.Point) bool
}
