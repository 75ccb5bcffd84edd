package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"

	"github.com/hupe1980/geoquad/geo"
)

// Compile-time check to ensure OrbEngine satisfies the Engine interface.
var _ Engine = (*OrbEngine)(nil)

// Default is the engine used by indexes when none is configured:
// an OrbEngine with the exclusive boundary policy.
var Default Engine = NewOrbEngine()

// Options contains configuration options for the orb engine.
type Options struct {
	// IncludeBoundary controls the boundary policy for point containment.
	// When false (the default), a point lying exactly on the edge of a
	// query shape is not considered contained. When true, boundary points
	// are contained.
	IncludeBoundary bool
}

// DefaultOptions contains the default configuration options for the orb engine.
var DefaultOptions = Options{
	IncludeBoundary: false,
}

// WithIncludeBoundary sets the boundary policy for point containment.
func WithIncludeBoundary(include bool) func(o *Options) {
	return func(o *Options) {
		o.IncludeBoundary = include
	}
}

// OrbEngine implements Engine on top of github.com/paulmach/orb.
// It supports polygon and multi-polygon shapes.
type OrbEngine struct {
	opts Options
}

// NewOrbEngine creates a new orb-backed geometry engine.
func NewOrbEngine(optFns ...func(o *Options)) *OrbEngine {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &OrbEngine{opts: opts}
}

// BoxIntersectsShape reports whether the box and the shape share a point.
func (e *OrbEngine) BoxIntersectsShape(box geo.Box, shape Shape) bool {
	if shape.geom == nil {
		return false
	}

	b := toBound(box)
	if !b.Intersects(shape.geom.Bound()) {
		return false
	}

	// Any box corner inside the shape (boundary included): overlap.
	for _, corner := range boundCorners(b) {
		if geometryContains(shape.geom, corner) {
			return true
		}
	}

	// Any shape vertex inside the box: overlap.
	for _, ring := range ringsOf(shape.geom) {
		for _, v := range ring {
			if b.Contains(v) {
				return true
			}
		}
	}

	// Shape boundary crossing the box without a vertex inside it.
	for _, ring := range ringsOf(shape.geom) {
		if len(clip.LineString(b, orb.LineString(ring))) > 0 {
			return true
		}
	}

	return false
}

// ShapeContainsBox reports whether the box lies entirely in the interior
// of the shape. The check is conservative: a box touching the shape
// boundary is reported as not contained and falls back to per-point tests.
func (e *OrbEngine) ShapeContainsBox(shape Shape, box geo.Box) bool {
	if shape.geom == nil {
		return false
	}

	b := toBound(box)
	if !boundCovers(shape.geom.Bound(), b) {
		return false
	}

	// All four corners strictly inside.
	for _, corner := range boundCorners(b) {
		if !geometryContains(shape.geom, corner) || onBoundary(shape.geom, corner) {
			return false
		}
	}

	// No boundary ring passes through the box; together with the corner
	// check this puts the whole box in the interior.
	for _, ring := range ringsOf(shape.geom) {
		if len(clip.LineString(b, orb.LineString(ring))) > 0 {
			return false
		}
	}

	return true
}

// ShapeContainsPoint reports whether p is contained in the shape under
// the engine's boundary policy.
func (e *OrbEngine) ShapeContainsPoint(shape Shape, p geo.Point) bool {
	if shape.geom == nil {
		return false
	}

	pt := orb.Point{p.X, p.Y}

	// Cheap bound rejection before the exact test.
	if !shape.geom.Bound().Contains(pt) {
		return false
	}

	if !geometryContains(shape.geom, pt) {
		return false
	}

	if e.opts.IncludeBoundary {
		return true
	}

	return !onBoundary(shape.geom, pt)
}

func toBound(box geo.Box) orb.Bound {
	return orb.Bound{
		Min: orb.Point{box.MinX, box.MinY},
		Max: orb.Point{box.MaxX, box.MaxY},
	}
}

func boundCorners(b orb.Bound) [4]orb.Point {
	return [4]orb.Point{
		b.Min,
		{b.Max.X(), b.Min.Y()},
		b.Max,
		{b.Min.X(), b.Max.Y()},
	}
}

func boundCovers(outer, inner orb.Bound) bool {
	return outer.Min.X() <= inner.Min.X() && inner.Max.X() <= outer.Max.X() &&
		outer.Min.Y() <= inner.Min.Y() && inner.Max.Y() <= outer.Max.Y()
}

// geometryContains is the inclusive point-in-shape test: boundary points
// count as inside. The boundary policy is applied on top of it.
func geometryContains(g orb.Geometry, pt orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	default:
		return false
	}
}

func onBoundary(g orb.Geometry, pt orb.Point) bool {
	for _, ring := range ringsOf(g) {
		if planar.DistanceFrom(orb.LineString(ring), pt) == 0 {
			return true
		}
	}
	return false
}

func ringsOf(g orb.Geometry) []orb.Ring {
	switch geom := g.(type) {
	case orb.Polygon:
		return geom
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range geom {
			rings = append(rings, poly...)
		}
		return rings
	default:
		return nil
	}
}
