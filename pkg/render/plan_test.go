package render

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/ashlar/pkg/profile"
	"github.com/chazu/ashlar/pkg/section"
)

func planParams() profile.Params {
	return profile.Params{L: 1000, W: 700, T: 100, Lw: 150, Lh: 200, Quantity: 1}
}

// hasDimension reports whether the drawing labels the given dimension.
func hasDimension(d PlanDrawing, prefix string) bool {
	for _, dim := range d.Dimensions {
		if strings.HasPrefix(dim.Label.Text, prefix+" ") {
			return true
		}
	}
	return false
}

func TestPlan_EmptyOnDegenerateInput(t *testing.T) {
	cfg := DefaultPlanConfig(800, 600)
	for _, p := range []profile.Params{
		{W: 0, T: 100},
		{W: 700, T: 0},
		{W: -1, T: -1},
	} {
		d := Plan(p, cfg)
		if len(d.Outline) != 0 || len(d.Dimensions) != 0 || len(d.Construction) != 0 {
			t.Errorf("params %+v: expected empty drawing, got %d outline points", p, len(d.Outline))
		}
	}
}

func TestPlan_ScaledAndCentred(t *testing.T) {
	cfg := DefaultPlanConfig(800, 600)
	d := Plan(planParams(), cfg)

	if len(d.Outline) != 6 {
		t.Fatalf("outline has %d points, want 6", len(d.Outline))
	}

	// Uniform scale: the widest of the two fit ratios governs.
	wantScale := math.Min(800*(1-2*cfg.Margin)/700, 600*(1-2*cfg.Margin)/300)
	if math.Abs(d.Scale-wantScale) > 1e-9 {
		t.Errorf("scale = %v, want %v", d.Scale, wantScale)
	}

	// The profile bounding box must be centred on the canvas.
	min, max := section.BoundingBox(d.Outline)
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	if math.Abs(cx-400) > 1e-6 || math.Abs(cy-300) > 1e-6 {
		t.Errorf("outline centre = (%v, %v), want (400, 300)", cx, cy)
	}

	// Aspect ratio preserved: projected extents keep the 700:300 ratio.
	if math.Abs((max.X-min.X)/(max.Y-min.Y)-700.0/300.0) > 1e-6 {
		t.Errorf("aspect ratio distorted: %vx%v", max.X-min.X, max.Y-min.Y)
	}
}

func TestPlan_BaseDimensions(t *testing.T) {
	d := Plan(planParams(), DefaultPlanConfig(800, 600))
	for _, name := range []string{"W", "T", "Lw", "Lh"} {
		if !hasDimension(d, name) {
			t.Errorf("missing %s dimension annotation", name)
		}
	}
	for _, dim := range d.Dimensions {
		for i, arrow := range dim.Arrows {
			if len(arrow) != 3 {
				t.Errorf("dimension %q arrow %d has %d points, want 3", dim.Label.Text, i, len(arrow))
			}
		}
	}
}

func TestPlan_LabelCentredOnLeader(t *testing.T) {
	d := Plan(planParams(), DefaultPlanConfig(800, 600))
	for _, dim := range d.Dimensions {
		mx := (dim.From.X + dim.To.X) / 2
		my := (dim.From.Y + dim.To.Y) / 2
		if math.Abs(dim.Label.X-mx) > 1e-9 || math.Abs(dim.Label.Y-my) > 1e-9 {
			t.Errorf("dimension %q label at (%v, %v), want leader midpoint (%v, %v)",
				dim.Label.Text, dim.Label.X, dim.Label.Y, mx, my)
		}
	}
}

func TestPlan_ChamferAnnotation(t *testing.T) {
	p := planParams()
	p.EdgeDepth = 50
	p.EdgeType = profile.EdgeChamfer

	d := Plan(p, DefaultPlanConfig(800, 600))
	if !hasDimension(d, "C") {
		t.Error("missing chamfer leg dimension")
	}

	// Dashed construction legs plus the right-angle marker.
	var dashed, solid int
	for _, c := range d.Construction {
		if c.Dashed {
			dashed++
		} else {
			solid++
		}
	}
	if dashed != 1 {
		t.Errorf("chamfer construction: %d dashed polylines, want 1", dashed)
	}
	if solid != 1 {
		t.Errorf("chamfer construction: %d solid polylines (marker), want 1", solid)
	}
}

func TestPlan_BullnoseAnnotation(t *testing.T) {
	p := planParams()
	p.EdgeDepth = 50
	p.EdgeType = profile.EdgeBullnose
	cfg := DefaultPlanConfig(800, 600)

	d := Plan(p, cfg)
	if !hasDimension(d, "R") {
		t.Error("missing radius dimension")
	}

	// The dashed reference circle must really be the full circle the
	// displayed arc belongs to: every sample equidistant from the
	// projected centre.
	var circle *Polyline
	for i := range d.Construction {
		if d.Construction[i].Dashed {
			circle = &d.Construction[i]
		}
	}
	if circle == nil {
		t.Fatal("no dashed reference circle emitted")
	}
	if len(circle.Points) != cfg.CircleSegments+1 {
		t.Fatalf("circle has %d points, want %d", len(circle.Points), cfg.CircleSegments+1)
	}

	var cx, cy float64
	for _, pt := range circle.Points[:cfg.CircleSegments] {
		cx += pt.X
		cy += pt.Y
	}
	cx /= float64(cfg.CircleSegments)
	cy /= float64(cfg.CircleSegments)
	wantR := 50 * d.Scale
	for _, pt := range circle.Points {
		if r := math.Hypot(pt.X-cx, pt.Y-cy); math.Abs(r-wantR) > 1e-6 {
			t.Fatalf("circle point %v is %v from centre, want %v", pt, r, wantR)
		}
	}
}

func TestPlan_TinyEdgeNotAnnotated(t *testing.T) {
	// A sub-pixel edge depth changes the polygon topology but draws no
	// edge annotation; the epsilon is purely cosmetic.
	p := planParams()
	p.EdgeDepth = 0.001
	p.EdgeType = profile.EdgeChamfer

	d := Plan(p, DefaultPlanConfig(800, 600))
	if len(d.Outline) != 7 {
		t.Errorf("outline has %d points, want chamfer topology (7)", len(d.Outline))
	}
	if hasDimension(d, "C") || len(d.Construction) != 0 {
		t.Error("sub-pixel edge depth should not be annotated")
	}
}
