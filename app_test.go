package main

import (
	"os"
	"testing"
)

func sillData() ParamsData {
	return ParamsData{
		L: 1000, W: 700, T: 100, Lw: 150, Lh: 200,
		EdgeDepth: 50, EdgeType: "chamfer", Quantity: 1,
	}
}

// TestComputeChamferE2E exercises the full pipeline the frontend
// drives on every field edit: validate → closed-form volume → display
// formatting. This is the same path the Wails Compute binding takes,
// but without the Wails runtime.
func TestComputeChamferE2E(t *testing.T) {
	app := NewApp()
	result := app.Compute(sillData())

	if !result.Valid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if result.UnitMM3 != 98_750_000 {
		t.Errorf("unit volume = %v mm³, want 98750000", result.UnitMM3)
	}
	if result.UnitDisplay != "0.098750" {
		t.Errorf("unit display = %q, want %q", result.UnitDisplay, "0.098750")
	}
}

func TestComputeBullnoseE2E(t *testing.T) {
	app := NewApp()
	data := sillData()
	data.EdgeType = "bullnose"

	result := app.Compute(data)
	if !result.Valid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	// 50²·(1−π/4)·1000 removed ≈ 536,505 mm³.
	if result.UnitMM3 < 99_463_000 || result.UnitMM3 > 99_464_000 {
		t.Errorf("unit volume = %v mm³, want ≈99463495", result.UnitMM3)
	}
	if result.UnitDisplay != "0.099463" {
		t.Errorf("unit display = %q, want %q", result.UnitDisplay, "0.099463")
	}
}

func TestComputeInvalidSuppressesVolume(t *testing.T) {
	app := NewApp()
	data := sillData()
	data.Lw = 700 // equal to W, violates Lw < W

	result := app.Compute(data)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 violation, got %v", result.Errors)
	}
	if result.Errors[0].Field != "lw" {
		t.Errorf("violation field = %q, want lw", result.Errors[0].Field)
	}
	// The display is the placeholder, never a computed-looking zero.
	if result.UnitDisplay != VolumePlaceholder || result.TotalDisplay != VolumePlaceholder {
		t.Errorf("displays = %q/%q, want placeholder", result.UnitDisplay, result.TotalDisplay)
	}
	if result.UnitMM3 != 0 || result.TotalMM3 != 0 {
		t.Errorf("numeric volumes should stay zero, got %v/%v", result.UnitMM3, result.TotalMM3)
	}
}

func TestComputeQuantityLinearity(t *testing.T) {
	app := NewApp()
	data := sillData()
	single := app.Compute(data)

	data.Quantity = 3
	batch := app.Compute(data)
	if batch.TotalMM3 != single.UnitMM3*3 {
		t.Errorf("total = %v, want %v", batch.TotalMM3, single.UnitMM3*3)
	}
}

func TestPlanAndIsometricGatedByValidator(t *testing.T) {
	app := NewApp()
	bad := sillData()
	bad.T = -1

	plan := app.Plan(bad, 800, 600)
	if plan.Valid || len(plan.Drawing.Outline) != 0 {
		t.Error("plan should be suppressed for invalid input")
	}
	iso := app.Isometric(bad, 800, 600)
	if iso.Valid || len(iso.View.Faces) != 0 {
		t.Error("isometric view should be suppressed for invalid input")
	}

	good := sillData()
	plan = app.Plan(good, 800, 600)
	if !plan.Valid || len(plan.Drawing.Outline) == 0 {
		t.Errorf("plan missing for valid input: %v", plan.Errors)
	}
	iso = app.Isometric(good, 800, 600)
	if !iso.Valid || len(iso.View.Faces) == 0 {
		t.Errorf("isometric view missing for valid input: %v", iso.Errors)
	}
}

func TestAutoFitBinding(t *testing.T) {
	app := NewApp()

	r := app.AutoFit(100, 100)
	if !r.OK {
		t.Fatalf("AutoFit failed: %s", r.Message)
	}
	if r.Radius < 58.57 || r.Radius > 58.59 {
		t.Errorf("radius = %v, want ≈58.578", r.Radius)
	}

	if bad := app.AutoFit(0, 100); bad.OK {
		t.Error("AutoFit should refuse non-positive input")
	}
}

// TestEvaluateScriptE2E exercises script → engine → quote → display,
// the path behind the script editor pane.
func TestEvaluateScriptE2E(t *testing.T) {
	source, err := os.ReadFile("examples/quote.ashlar")
	if err != nil {
		t.Fatalf("failed to read quote.ashlar: %v", err)
	}

	app := NewApp()
	result := app.EvaluateScript(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("script error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Items) != 2 {
		t.Fatalf("%d items, want 2", len(result.Items))
	}

	north := result.Items[0]
	if north.Name != "north-sill" || !north.Valid {
		t.Fatalf("north item = %+v", north)
	}
	if north.UnitDisplay != "0.098750" {
		t.Errorf("north display = %q, want 0.098750", north.UnitDisplay)
	}

	south := result.Items[1]
	if south.Name != "south-sill" || !south.Valid {
		t.Fatalf("south item = %+v", south)
	}
	if south.Quantity != 2 || south.TotalMM3 != 2*south.UnitMM3 {
		t.Errorf("south quantities wrong: %+v", south)
	}

	if result.TotalMM3 != north.TotalMM3+south.TotalMM3 {
		t.Errorf("quote total = %v, want %v", result.TotalMM3, north.TotalMM3+south.TotalMM3)
	}
}

func TestEvaluateScriptParseError(t *testing.T) {
	app := NewApp()
	result := app.EvaluateScript(`(profile :width`)
	if len(result.Errors) == 0 {
		t.Fatal("expected script errors")
	}
	if len(result.Items) != 0 {
		t.Errorf("no items expected on parse failure, got %d", len(result.Items))
	}
	if result.TotalDisplay != VolumePlaceholder {
		t.Errorf("total display = %q, want placeholder", result.TotalDisplay)
	}
}
