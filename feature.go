package geoquad

import (
	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/geometry"
	"github.com/hupe1980/geoquad/properties"
)

// Feature is a query shape plus optional properties. Features are only
// used as overlap-query arguments; they are never stored in the tree.
type Feature struct {
	Shape      geometry.Shape
	Properties properties.Properties
}

// NewFeature wraps an already constructed shape.
func NewFeature(shape geometry.Shape, props properties.Properties) *Feature {
	return &Feature{Shape: shape, Properties: props}
}

// NewPolygonFeature builds a feature from polygon rings. The first ring
// is the outer boundary; further rings are holes.
func NewPolygonFeature(rings ...[]geo.Point) (*Feature, error) {
	shape, err := geometry.NewPolygon(rings...)
	if err != nil {
		return nil, translateError(err)
	}
	return &Feature{Shape: shape}, nil
}

// NewBoxFeature builds a rectangular feature from a bounding box.
func NewBoxFeature(box geo.Box) (*Feature, error) {
	shape, err := geometry.NewBoxShape(box)
	if err != nil {
		return nil, translateError(err)
	}
	return &Feature{Shape: shape}, nil
}

// FeatureFromGeoJSON builds a feature from a GeoJSON Feature or bare
// Geometry document. GeoJSON feature properties carry over.
func FeatureFromGeoJSON(data []byte) (*Feature, error) {
	shape, props, err := geometry.FromGeoJSON(data)
	if err != nil {
		return nil, translateError(err)
	}
	return &Feature{Shape: shape, Properties: properties.Properties(props)}, nil
}
