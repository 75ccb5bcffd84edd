package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FromGeoJSON builds a shape from a GeoJSON Feature or bare Geometry
// document. Feature properties, if any, are returned alongside the shape.
//
// Only polygonal geometries (Polygon, MultiPolygon) are supported as
// query shapes; anything else is rejected with ErrInvalidGeometry.
func FromGeoJSON(data []byte) (Shape, map[string]any, error) {
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		if f.Geometry == nil {
			return Shape{}, nil, &ErrInvalidGeometry{Reason: "feature has no geometry"}
		}
		shape, err := fromOrb(f.Geometry)
		if err != nil {
			return Shape{}, nil, err
		}
		return shape, f.Properties, nil
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return Shape{}, nil, &ErrInvalidGeometry{Reason: err.Error()}
	}

	shape, err := fromOrb(g.Geometry())
	if err != nil {
		return Shape{}, nil, err
	}
	return shape, nil, nil
}

func fromOrb(g orb.Geometry) (Shape, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) == 0 || len(geom[0]) < 4 {
			return Shape{}, &ErrInvalidGeometry{Reason: "empty polygon"}
		}
		return Shape{geom: geom}, nil
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return Shape{}, &ErrInvalidGeometry{Reason: "empty multipolygon"}
		}
		return Shape{geom: geom}, nil
	default:
		return Shape{}, &ErrInvalidGeometry{Reason: "unsupported geometry type " + g.GeoJSONType()}
	}
}
