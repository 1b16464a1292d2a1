package render

import (
	"math"

	"github.com/chazu/ashlar/pkg/profile"
	"github.com/chazu/ashlar/pkg/section"
)

// IsoConfig holds the display constants of the isometric projector.
type IsoConfig struct {
	Width  float64 // canvas width in px
	Height float64 // canvas height in px
	Extent float64 // px extent the largest dimension maps to

	ArcSegments   int
	LabelOffsetPx float64
}

// DefaultIsoConfig returns the standard isometric configuration for a
// canvas of the given pixel size.
func DefaultIsoConfig(width, height float64) IsoConfig {
	return IsoConfig{
		Width:         width,
		Height:        height,
		Extent:        0.55 * math.Min(width, height),
		ArcSegments:   section.DefaultArcSegments,
		LabelOffsetPx: 16,
	}
}

// IsoView is the projected extruded solid: shaded face polygons in
// paint order plus floating dimension labels.
type IsoView struct {
	Faces  []Face  `json:"faces"`
	Labels []Label `json:"labels"`
	Scale  float64 `json:"scale"` // px per mm along each axis
}

// isoCos and isoSin define the two ±30°-from-horizontal screen
// diagonals: the in-plane X axis runs down-right, the extrusion axis
// down-left.
var (
	isoCos = math.Cos(math.Pi / 6)
	isoSin = math.Sin(math.Pi / 6)
)

// Isometric extrudes the cross-section polygon L along the length axis
// under a fixed axonometric transform and returns its faces and
// labels. In-plane X projects to (+cos30°, +sin30°), the extrusion
// axis to the mirrored diagonal (−cos30°, +sin30°), and in-plane Y
// stays vertical, so no axis collapses onto another and every
// classified face keeps positive screen area.
//
// Each lateral face is the quad (frontᵢ, frontᵢ₊₁, backᵢ₊₁, backᵢ);
// its tone comes from the sign of the defining cross-section edge
// (Δx, Δy) alone. That heuristic stands in for visibility because at
// this one viewing angle every classified face is frontal-visible.
// The back cap is never drawn; the front cap is emitted last so it
// closes the silhouette.
func Isometric(p profile.Params, cfg IsoConfig) IsoView {
	if p.W <= 0 || p.T <= 0 || p.L <= 0 {
		return IsoView{}
	}

	scale := cfg.Extent / math.Max(p.W, math.Max(p.L, p.T+p.Lh))
	outline := section.Build(p, cfg.ArcSegments)

	// Project first, centre afterwards from the projected bounds.
	raw := func(x, y, z float64) section.Point {
		return section.Point{
			X: (x - z) * isoCos * scale,
			Y: (x+z)*isoSin*scale + y*scale,
		}
	}

	n := len(outline)
	front := make([]section.Point, n)
	back := make([]section.Point, n)
	for i, pt := range outline {
		front[i] = raw(pt.X, pt.Y, 0)
		back[i] = raw(pt.X, pt.Y, p.L)
	}

	min, max := section.BoundingBox(append(append([]section.Point{}, front...), back...))
	ox := (cfg.Width-(max.X-min.X))/2 - min.X
	oy := (cfg.Height-(max.Y-min.Y))/2 - min.Y
	shift := func(pt section.Point) section.Point {
		return section.Point{X: pt.X + ox, Y: pt.Y + oy}
	}

	view := IsoView{Scale: scale}

	for i := range outline {
		j := (i + 1) % n
		tone := classifyEdge(outline[j].X-outline[i].X, outline[j].Y-outline[i].Y)
		view.Faces = append(view.Faces, Face{
			Points: []section.Point{shift(front[i]), shift(front[j]), shift(back[j]), shift(back[i])},
			Tone:   tone,
			Color:  tone.Color(),
		})
	}

	// Front cap on top of every lateral face.
	frontCap := Face{Tone: ToneFront, Color: ToneFront.Color()}
	for _, pt := range front {
		frontCap.Points = append(frontCap.Points, shift(pt))
	}
	view.Faces = append(view.Faces, frontCap)

	view.Labels = isoLabels(p, raw, shift, cfg)
	return view
}

// classifyEdge maps the cross-section edge direction to a face tone.
// Right-and-down diagonals (the chamfer cut or arc segments) take the
// accent tone and must be matched before the plain horizontal case.
func classifyEdge(dx, dy float64) Tone {
	switch {
	case dx > 0 && dy > 0:
		return ToneAccent
	case dx > 0:
		return ToneTop
	case dx < 0:
		return ToneBottom
	case dy > 0:
		return ToneOuter
	case dy < 0:
		return ToneInner
	default:
		return ToneOuter
	}
}

// isoLabels places one floating label per dimension near the
// midpoint of the edge it measures.
func isoLabels(p profile.Params, raw func(x, y, z float64) section.Point, shift func(section.Point) section.Point, cfg IsoConfig) []Label {
	off := cfg.LabelOffsetPx
	at := func(x, y, z, dx, dy float64, text string) Label {
		pt := shift(raw(x, y, z))
		return Label{X: pt.X + dx, Y: pt.Y + dy, Text: text}
	}

	labels := []Label{
		at(p.W/2, 0, 0, 0, -off, dimText("W", p.W)),
		at(0, p.T/2, 0, -off, 0, dimText("T", p.T)),
		at(p.W, 0, p.L/2, off/2, -off, dimText("L", p.L)),
		at(p.W-p.Lw/2, p.T+p.Lh, 0, 0, off, dimText("Lw", p.Lw)),
		at(p.W, p.T+p.Lh/2, 0, off, 0, dimText("Lh", p.Lh)),
	}

	if tr := p.EdgeDepth; tr > 0 {
		name := "C"
		if p.EdgeType == profile.EdgeBullnose {
			name = "R"
		}
		labels = append(labels, at(p.W, tr, 0, off, -off/2, dimText(name, tr)))
	}

	return labels
}
