// Package render projects an L-profile cross-section into drawing
// primitives for the frontend: a dimensioned 2D plan view and a shaded
// 3D isometric view. All output is in screen pixels, recomputed from
// scratch on every call and owned by the caller.
package render

import "github.com/chazu/ashlar/pkg/section"

// Tone classifies a face of the isometric view for shading. The
// classification is derived from the defining cross-section edge
// direction, not from visibility; it only holds at the fixed viewing
// angle used here.
type Tone int

const (
	ToneTop    Tone = iota // horizontal-forward edges: upward-facing surfaces
	ToneOuter              // vertical-downward edges: the outer side
	ToneInner              // vertical-upward edges: inner lip faces
	ToneBottom             // horizontal-backward edges: undersides
	ToneAccent             // right-and-down edges: chamfer cut or bullnose arc
	ToneFront              // the front cap
)

func (t Tone) String() string {
	switch t {
	case ToneTop:
		return "top"
	case ToneOuter:
		return "outer"
	case ToneInner:
		return "inner"
	case ToneBottom:
		return "bottom"
	case ToneAccent:
		return "accent"
	case ToneFront:
		return "front"
	default:
		return "unknown"
	}
}

// toneColors assigns each tone a fill color, brightest on top and
// dimmest underneath to fake directional light.
var toneColors = map[Tone]string{
	ToneTop:    "#D6CEC3",
	ToneOuter:  "#B8AFA2",
	ToneInner:  "#9C9488",
	ToneBottom: "#857E73",
	ToneAccent: "#C9A96A",
	ToneFront:  "#CFC6BA",
}

// Color returns the fill color for the tone.
func (t Tone) Color() string {
	return toneColors[t]
}

// Polyline is an open run of screen-space points.
type Polyline struct {
	Points []section.Point `json:"points"`
	Dashed bool            `json:"dashed,omitempty"`
}

// Face is a closed filled polygon in screen space.
type Face struct {
	Points []section.Point `json:"points"`
	Tone   Tone            `json:"tone"`
	Color  string          `json:"color"`
}

// Label is a floating text annotation.
type Label struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Dimension annotates one measured extent: an offset leader line with
// an arrowhead triangle at each end and a centred text label.
type Dimension struct {
	From   section.Point      `json:"from"`
	To     section.Point      `json:"to"`
	Arrows [2][]section.Point `json:"arrows"`
	Label  Label              `json:"label"`
}
