// Package geo provides the planar primitives shared by all geoquad packages:
// points and axis-aligned bounding boxes.
package geo

import (
	"fmt"
	"math"
)

// Point is a location in the 2D plane.
type Point struct {
	X float64
	Y float64
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are finite numbers.
// NaN and infinite coordinates cannot be indexed.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
