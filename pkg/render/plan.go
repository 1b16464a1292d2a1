package render

import (
	"math"
	"strconv"

	"github.com/chazu/ashlar/pkg/profile"
	"github.com/chazu/ashlar/pkg/section"
)

// PlanConfig holds the display-quality constants of the 2D projector.
type PlanConfig struct {
	Width  float64 // canvas width in px
	Height float64 // canvas height in px
	Margin float64 // margin fraction kept clear on each side

	ArcSegments    int     // bullnose arc subdivision count
	CircleSegments int     // dashed reference circle subdivision count
	EdgeEpsilonPx  float64 // min projected edge depth worth annotating
	DimOffsetPx    float64 // leader line offset from the outline
	ArrowPx        float64 // arrowhead size
	MarkerPx       float64 // right-angle / centre marker size
}

// DefaultPlanConfig returns the standard plan-view configuration for a
// canvas of the given pixel size.
func DefaultPlanConfig(width, height float64) PlanConfig {
	return PlanConfig{
		Width:          width,
		Height:         height,
		Margin:         0.12,
		ArcSegments:    section.DefaultArcSegments,
		CircleSegments: 48,
		EdgeEpsilonPx:  3,
		DimOffsetPx:    24,
		ArrowPx:        6,
		MarkerPx:       8,
	}
}

// PlanDrawing is the annotated 2D cross-section, all in screen pixels.
type PlanDrawing struct {
	Outline      []section.Point `json:"outline"` // closed profile boundary
	Construction []Polyline      `json:"construction,omitempty"`
	Dimensions   []Dimension     `json:"dimensions,omitempty"`
	Scale        float64         `json:"scale"` // px per mm
}

// Plan maps the cross-section polygon and its raw dimension values
// into a scaled, centred, annotated planar drawing. The scale is
// uniform on both axes and chosen so the profile bounding box
// (W wide, T+Lh tall) fits inside the margins.
//
// Plan has no error path: it produces an empty drawing when W or T is
// not positive, deferring to the validator having gated the caller.
func Plan(p profile.Params, cfg PlanConfig) PlanDrawing {
	if p.W <= 0 || p.T <= 0 {
		return PlanDrawing{}
	}

	ext := extent{w: p.W, h: p.T + p.Lh}
	scale := ext.fit(cfg.Width, cfg.Height, cfg.Margin)
	ox := (cfg.Width - p.W*scale) / 2
	oy := (cfg.Height - ext.h*scale) / 2
	proj := func(pt section.Point) section.Point {
		return section.Point{X: ox + pt.X*scale, Y: oy + pt.Y*scale}
	}

	d := PlanDrawing{Scale: scale}
	for _, pt := range section.Build(p, cfg.ArcSegments) {
		d.Outline = append(d.Outline, proj(pt))
	}

	off := cfg.DimOffsetPx

	// W across the top, T down the left flank of the slab.
	d.Dimensions = append(d.Dimensions,
		dimension(proj(section.Point{X: 0, Y: 0}), proj(section.Point{X: p.W, Y: 0}),
			section.Point{Y: -off}, dimText("W", p.W), cfg),
		dimension(proj(section.Point{X: 0, Y: 0}), proj(section.Point{X: 0, Y: p.T}),
			section.Point{X: -off}, dimText("T", p.T), cfg),
	)

	// Lip extents: Lw under the lip, Lh along its outer face.
	if p.Lw > 0 && p.Lh > 0 {
		bottom := p.T + p.Lh
		d.Dimensions = append(d.Dimensions,
			dimension(proj(section.Point{X: p.W - p.Lw, Y: bottom}), proj(section.Point{X: p.W, Y: bottom}),
				section.Point{Y: off}, dimText("Lw", p.Lw), cfg),
			dimension(proj(section.Point{X: p.W, Y: p.T}), proj(section.Point{X: p.W, Y: bottom}),
				section.Point{X: off}, dimText("Lh", p.Lh), cfg),
		)
	}

	// Edge treatment annotation, only when it is legible at this scale.
	// The polygon topology upstream does not depend on this epsilon.
	if tr := p.EdgeDepth; tr > 0 && tr*scale >= cfg.EdgeEpsilonPx {
		if p.EdgeType == profile.EdgeBullnose {
			d.annotateBullnose(p, tr, proj, cfg)
		} else {
			d.annotateChamfer(p, tr, proj, cfg)
		}
	}

	return d
}

// annotateBullnose draws the dashed full reference circle the quarter
// arc belongs to, its centre marker, and a radius dimension out to the
// arc midpoint.
func (d *PlanDrawing) annotateBullnose(p profile.Params, tr float64, proj func(section.Point) section.Point, cfg PlanConfig) {
	centre := section.Point{X: p.W - tr, Y: tr}

	circle := make([]section.Point, 0, cfg.CircleSegments+1)
	for i := 0; i <= cfg.CircleSegments; i++ {
		a := 2 * math.Pi * float64(i) / float64(cfg.CircleSegments)
		circle = append(circle, proj(section.Point{
			X: centre.X + tr*math.Cos(a),
			Y: centre.Y + tr*math.Sin(a),
		}))
	}
	d.Construction = append(d.Construction, Polyline{Points: circle, Dashed: true})

	// Centre cross.
	c := proj(centre)
	m := cfg.MarkerPx / 2
	d.Construction = append(d.Construction,
		Polyline{Points: []section.Point{{X: c.X - m, Y: c.Y}, {X: c.X + m, Y: c.Y}}},
		Polyline{Points: []section.Point{{X: c.X, Y: c.Y - m}, {X: c.X, Y: c.Y + m}}},
	)

	// Radius leader from the centre to the arc midpoint (45° out).
	mid := section.Point{
		X: centre.X + tr*math.Cos(-math.Pi/4),
		Y: centre.Y + tr*math.Sin(-math.Pi/4),
	}
	d.Dimensions = append(d.Dimensions,
		dimension(c, proj(mid), section.Point{}, dimText("R", tr), cfg))
}

// annotateChamfer draws the two dashed construction legs of the
// removed corner, a right-angle marker at the original corner, and a
// leg dimension.
func (d *PlanDrawing) annotateChamfer(p profile.Params, tr float64, proj func(section.Point) section.Point, cfg PlanConfig) {
	corner := section.Point{X: p.W, Y: 0}
	top := section.Point{X: p.W - tr, Y: 0}
	side := section.Point{X: p.W, Y: tr}

	d.Construction = append(d.Construction,
		Polyline{Points: []section.Point{proj(top), proj(corner), proj(side)}, Dashed: true})

	// Right-angle marker tucked inside the removed corner.
	c := proj(corner)
	m := cfg.MarkerPx
	d.Construction = append(d.Construction, Polyline{Points: []section.Point{
		{X: c.X - m, Y: c.Y}, {X: c.X - m, Y: c.Y + m}, {X: c.X, Y: c.Y + m},
	}})

	d.Dimensions = append(d.Dimensions,
		dimension(proj(top), proj(corner), section.Point{Y: -cfg.DimOffsetPx}, dimText("C", tr), cfg))
}

// extent is a rectangular size in mm.
type extent struct{ w, h float64 }

// fit returns the uniform px-per-mm scale that fits the extent inside
// the canvas while keeping the margin fraction clear on every side.
func (e extent) fit(width, height, margin float64) float64 {
	availW := width * (1 - 2*margin)
	availH := height * (1 - 2*margin)
	return math.Min(availW/e.w, availH/e.h)
}

// dimension builds a leader line parallel to a..b shifted by off, with
// inward-pointing arrowheads at both ends and a centred label.
func dimension(a, b, off section.Point, text string, cfg PlanConfig) Dimension {
	from := section.Point{X: a.X + off.X, Y: a.Y + off.Y}
	to := section.Point{X: b.X + off.X, Y: b.Y + off.Y}

	return Dimension{
		From: from,
		To:   to,
		Arrows: [2][]section.Point{
			arrowhead(from, to, cfg.ArrowPx),
			arrowhead(to, from, cfg.ArrowPx),
		},
		Label: Label{
			X:    (from.X + to.X) / 2,
			Y:    (from.Y + to.Y) / 2,
			Text: text,
		},
	}
}

// arrowhead returns a small triangle at tip pointing away from toward.
func arrowhead(tip, toward section.Point, size float64) []section.Point {
	dx, dy := toward.X-tip.X, toward.Y-tip.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return []section.Point{tip}
	}
	ux, uy := dx/l, dy/l
	base := section.Point{X: tip.X + ux*size, Y: tip.Y + uy*size}
	half := size / 2
	return []section.Point{
		tip,
		{X: base.X - uy*half, Y: base.Y + ux*half},
		{X: base.X + uy*half, Y: base.Y - ux*half},
	}
}

// dimText renders "name value" with the shortest exact decimal form.
func dimText(name string, v float64) string {
	return name + " " + strconv.FormatFloat(v, 'f', -1, 64)
}
