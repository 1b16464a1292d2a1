// Package section builds the 2D boundary polygon of an L-profile
// cross-section. The polygon is a display artifact consumed by the
// projectors and the mesh exporter; volume is always computed in
// closed form and never from this polygon.
package section

import (
	"math"

	"github.com/chazu/ashlar/pkg/profile"
)

// DefaultArcSegments is the display-quality subdivision count for the
// bullnose quarter circle. It is a rendering constant, not a physical
// parameter.
const DefaultArcSegments = 12

// Point is a 2D point in profile coordinates: x grows rightward,
// y grows downward, the slab's top-left corner is the origin. Units
// are mm until a projector applies its screen scale.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Build returns the closed boundary polygon of the cross-section in a
// fixed clockwise traversal starting at the slab's top-left corner:
// along the top edge, through the edge treatment, down the outer side,
// under the lip, up its inner face, back along the slab underside and
// up the left side. The last point implicitly connects to the first.
//
// Vertex counts per variant: 6 sharp, 7 chamfer, 6+arcSegments
// bullnose. Topology branches on EdgeDepth > 0 only; whether the
// treatment is large enough to annotate is a projector concern.
func Build(p profile.Params, arcSegments int) []Point {
	if arcSegments < 1 {
		arcSegments = DefaultArcSegments
	}

	tr := p.EdgeDepth
	bottom := p.T + p.Lh

	// Tail shared by every variant: outer side down, lip, underside, left side.
	tail := []Point{
		{p.W, bottom},
		{p.W - p.Lw, bottom},
		{p.W - p.Lw, p.T},
		{0, p.T},
	}

	var pts []Point
	switch {
	case tr <= 0:
		pts = append(pts, Point{0, 0}, Point{p.W, 0})

	case p.EdgeType == profile.EdgeBullnose:
		pts = append(pts, Point{0, 0})
		pts = append(pts, arcPoints(p.W-tr, tr, tr, arcSegments)...)

	default: // chamfer
		pts = append(pts, Point{0, 0}, Point{p.W - tr, 0}, Point{p.W, tr})
	}

	return append(pts, tail...)
}

// arcPoints samples the quarter circle of radius r centred at (cx, cy)
// from the top tangent point (cx, cy−r) to the right tangent point
// (cx+r, cy), inclusive: segments+1 points.
func arcPoints(cx, cy, r float64, segments int) []Point {
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := -math.Pi/2 + math.Pi/2*float64(i)/float64(segments)
		pts = append(pts, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return pts
}

// BoundingBox returns the min and max corners of a polygon.
func BoundingBox(pts []Point) (min, max Point) {
	if len(pts) == 0 {
		return
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Area returns the enclosed area of a closed polygon via the shoelace
// formula, independent of traversal direction. Display use only.
func Area(pts []Point) float64 {
	var sum float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}
