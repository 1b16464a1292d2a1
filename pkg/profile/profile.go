// Package profile defines the parametric L-profile stone slab and the
// pure computations over it: invariant validation, closed-form volume,
// and the tangent-fit solver for the bullnose radius.
package profile

// EdgeType selects the treatment applied to the top outer edge.
type EdgeType int

const (
	EdgeChamfer  EdgeType = iota // flat 45° bevel
	EdgeBullnose                 // rounded quarter-circle
)

func (e EdgeType) String() string {
	switch e {
	case EdgeChamfer:
		return "chamfer"
	case EdgeBullnose:
		return "bullnose"
	default:
		return "unknown"
	}
}

// ParseEdgeType converts a frontend/script string to an EdgeType.
// Unrecognised values fall back to chamfer.
func ParseEdgeType(s string) EdgeType {
	if s == "bullnose" {
		return EdgeBullnose
	}
	return EdgeChamfer
}

// Params is the full parameter set for one stone profile. All lengths
// are in mm. The profile cross-section is a flat slab W wide and T
// thick with a lip Lw wide hanging Lh below the slab's right edge; the
// solid is the cross-section extruded L along its length.
type Params struct {
	L         float64  `json:"l"`          // extrusion length
	W         float64  `json:"w"`          // total slab width
	T         float64  `json:"t"`          // slab thickness
	Lw        float64  `json:"lw"`         // lip width, < W
	Lh        float64  `json:"lh"`         // lip drop height
	EdgeDepth float64  `json:"edge_depth"` // chamfer leg / bullnose radius, 0 = sharp
	EdgeType  EdgeType `json:"edge_type"`
	Quantity  int      `json:"quantity"` // number of identical pieces, >= 1
}

// Default returns the parameter set the UI starts from: a 1 m
// windowsill blank with a sharp edge.
func Default() Params {
	return Params{
		L:        1000,
		W:        700,
		T:        100,
		Lw:       150,
		Lh:       200,
		EdgeType: EdgeChamfer,
		Quantity: 1,
	}
}
