package geo

import "fmt"

// Quadrant identifies one of the four children of a subdivided box.
// The order is fixed: NW, NE, SW, SE. Traversals visit children in
// this order, which makes walk output deterministic.
type Quadrant int

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

// String returns a string representation of the Quadrant.
func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	default:
		return "Unknown"
	}
}

// Box is an axis-aligned bounding box. A valid Box has MinX <= MaxX and
// MinY <= MaxY. Degenerate boxes (zero width and/or height) are valid;
// they occur when all indexed points are collinear or coincident.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBox returns a Box spanning the given corners.
func NewBox(minX, minY, maxX, maxY float64) Box {
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// IsValid reports whether min <= max holds on both axes.
func (b Box) IsValid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// IsDegenerate reports whether the box has zero width or zero height.
func (b Box) IsDegenerate() bool {
	return b.MinX == b.MaxX || b.MinY == b.MaxY
}

// Contains reports whether p lies within the box, boundaries included.
func (b Box) Contains(p Point) bool {
	return b.MinX <= p.X && p.X <= b.MaxX && b.MinY <= p.Y && p.Y <= b.MaxY
}

// Intersects reports whether the two boxes share at least one point.
// Touching edges count as intersecting.
func (b Box) Intersects(o Box) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Center returns the midpoint of the box. Subdivision splits at the center.
func (b Box) Center() Point {
	return Point{X: b.MinX + (b.MaxX-b.MinX)/2, Y: b.MinY + (b.MaxY-b.MinY)/2}
}

// Quadrant returns the sub-box for the given quadrant. The four quadrants
// exactly partition the box at its center.
func (b Box) Quadrant(q Quadrant) Box {
	c := b.Center()
	switch q {
	case NW:
		return Box{MinX: b.MinX, MinY: c.Y, MaxX: c.X, MaxY: b.MaxY}
	case NE:
		return Box{MinX: c.X, MinY: c.Y, MaxX: b.MaxX, MaxY: b.MaxY}
	case SW:
		return Box{MinX: b.MinX, MinY: b.MinY, MaxX: c.X, MaxY: c.Y}
	case SE:
		return Box{MinX: c.X, MinY: b.MinY, MaxX: b.MaxX, MaxY: c.Y}
	default:
		return b
	}
}

// QuadrantFor returns the quadrant a point routes to. Ties on the center
// lines resolve to the higher-x / higher-y quadrant, so every point has
// exactly one home among the four children.
func (b Box) QuadrantFor(p Point) Quadrant {
	c := b.Center()
	east := p.X >= c.X
	north := p.Y >= c.Y

	switch {
	case north && east:
		return NE
	case north:
		return NW
	case east:
		return SE
	default:
		return SW
	}
}

// Extend returns the smallest box covering both b and p.
func (b Box) Extend(p Point) Box {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// String returns a string representation of the Box.
func (b Box) String() string {
	return fmt.Sprintf("[%g %g %g %g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
