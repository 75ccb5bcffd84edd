package geoquad_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/geoquad"
	"github.com/hupe1980/geoquad/geo"
	"github.com/hupe1980/geoquad/properties"
)

func ExampleNew() {
	points := []geoquad.PointWithData[string]{
		{Point: geo.Pt(0, 0), Data: "origin"},
		{Point: geo.Pt(0, 1), Data: "north"},
		{Point: geo.Pt(5, 1), Data: "east"},
	}

	qt, err := geoquad.New(points, geoquad.WithCapacity(4))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(qt.Len(), qt.Bounds())
	fmt.Println(qt.ContainsPoint(geo.Pt(0.1, 0.1)))
	// Output:
	// 3 [0 0 5 1]
	// true
}

func ExampleQuadTree_GetOverlappingPoints() {
	points := []geoquad.PointWithData[string]{
		{Point: geo.Pt(0, 0), Data: "origin"},
		{Point: geo.Pt(0, 1), Data: "north"},
		{Point: geo.Pt(5, 1), Data: "east", Properties: properties.Properties{"name": "east"}},
	}

	qt, err := geoquad.New(points)
	if err != nil {
		log.Fatal(err)
	}

	feature, err := geoquad.NewPolygonFeature([]geo.Point{
		geo.Pt(0, 0), geo.Pt(6, 0), geo.Pt(6, 2), geo.Pt(4, 2),
	})
	if err != nil {
		log.Fatal(err)
	}

	matches, err := qt.GetOverlappingPoints(feature)
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range matches {
		fmt.Println(p.Point, p.Properties["name"])
	}
	// Output:
	// (5, 1) east
}

func ExampleQuadTree_CountOverlappingPoints() {
	points := []geoquad.PointWithData[struct{}]{
		{Point: geo.Pt(1, 1)},
		{Point: geo.Pt(2, 2)},
		{Point: geo.Pt(3, 3)},
		{Point: geo.Pt(9, 9)},
	}

	qt, err := geoquad.New(points)
	if err != nil {
		log.Fatal(err)
	}

	feature, err := geoquad.NewBoxFeature(geo.NewBox(0, 0, 4, 4))
	if err != nil {
		log.Fatal(err)
	}

	count, err := qt.CountOverlappingPoints(feature)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(count)
	// Output:
	// 3
}
