package profile

import "math"

// Breakdown is the result of the closed-form volume computation.
// All values are in mm³; unit conversion is a display concern.
type Breakdown struct {
	Base        float64 `json:"base"`         // slab + lip prism, before edge removal
	EdgeRemoved float64 `json:"edge_removed"` // material removed by the edge treatment
	Unit        float64 `json:"unit"`         // one piece: max(0, base - removed)
	Total       float64 `json:"total"`        // unit × quantity
}

// Volume computes the exact material volume of a validated parameter
// set. The L-profile decomposes into a slab rectangle W×T and a lip
// rectangle Lw×Lh, extruded along L; the edge treatment subtracts a
// prism whose cross-section area is known in closed form. No polygon
// area or numerical integration is involved, so the display arc
// approximation never leaks into the physical quantity.
//
// The caller is responsible for validating p first; Volume assumes the
// invariants hold.
func Volume(p Params) Breakdown {
	base := p.L * (p.W*p.T + p.Lw*p.Lh)

	var removed float64
	switch p.EdgeType {
	case EdgeBullnose:
		removed = bullnoseRemoved(p.EdgeDepth, p.L)
	default:
		removed = chamferRemoved(p.EdgeDepth, p.L)
	}

	// Floor at zero: near the EdgeDepth → T boundary floating-point
	// roundoff could otherwise yield a small negative volume.
	unit := math.Max(0, base-removed)

	return Breakdown{
		Base:        base,
		EdgeRemoved: removed,
		Unit:        unit,
		Total:       unit * float64(p.Quantity),
	}
}

// chamferRemoved is the volume of the 45° bevel prism: a right
// isosceles triangle with both legs equal to tr, extruded along l.
// The legs, not the hypotenuse, are tr; substituting the hypotenuse
// would exactly double the result.
func chamferRemoved(tr, l float64) float64 {
	return 0.5 * tr * tr * l
}

// bullnoseRemoved is the volume of the rounded-over prism: a tr×tr
// square minus its inscribed quarter circle, extruded along l.
func bullnoseRemoved(tr, l float64) float64 {
	return tr * tr * (1 - math.Pi/4) * l
}
