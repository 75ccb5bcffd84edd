package geometry

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/hupe1980/geoquad/geo"
)

// NewPolygon builds a polygon shape from one or more rings. The first
// ring is the outer boundary; any further rings are holes. Rings are
// closed automatically if the last point differs from the first.
//
// A ring needs at least three distinct points and only finite
// coordinates; anything else is rejected with ErrInvalidGeometry.
func NewPolygon(rings ...[]geo.Point) (Shape, error) {
	if len(rings) == 0 {
		return Shape{}, &ErrInvalidGeometry{Reason: "polygon requires at least one ring"}
	}

	poly := make(orb.Polygon, 0, len(rings))
	for i, ring := range rings {
		r, err := newRing(ring)
		if err != nil {
			return Shape{}, &ErrInvalidGeometry{Reason: fmt.Sprintf("ring %d: %s", i, err)}
		}
		poly = append(poly, r)
	}

	return Shape{geom: poly}, nil
}

// NewMultiPolygon builds a shape from multiple polygons.
func NewMultiPolygon(polygons ...Shape) (Shape, error) {
	if len(polygons) == 0 {
		return Shape{}, &ErrInvalidGeometry{Reason: "multipolygon requires at least one polygon"}
	}

	mp := make(orb.MultiPolygon, 0, len(polygons))
	for i, s := range polygons {
		poly, ok := s.geom.(orb.Polygon)
		if !ok {
			return Shape{}, &ErrInvalidGeometry{Reason: fmt.Sprintf("member %d is not a polygon", i)}
		}
		mp = append(mp, poly)
	}

	return Shape{geom: mp}, nil
}

// NewBoxShape builds a rectangular polygon shape from a bounding box.
func NewBoxShape(box geo.Box) (Shape, error) {
	if !box.IsValid() {
		return Shape{}, &ErrInvalidGeometry{Reason: fmt.Sprintf("invalid box %s", box)}
	}

	return NewPolygon([]geo.Point{
		{X: box.MinX, Y: box.MinY},
		{X: box.MaxX, Y: box.MinY},
		{X: box.MaxX, Y: box.MaxY},
		{X: box.MinX, Y: box.MaxY},
	})
}

func newRing(points []geo.Point) (orb.Ring, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points, got %d", len(points))
	}

	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("non-finite coordinate %s", p)
		}
		ring = append(ring, orb.Point{p.X, p.Y})
	}

	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		return nil, fmt.Errorf("degenerate ring")
	}

	return ring, nil
}
