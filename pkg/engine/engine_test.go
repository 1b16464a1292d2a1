package engine

import (
	"math"
	"testing"
)

func TestEvaluate_EmptySource(t *testing.T) {
	q, evalErrs, err := NewEngine().Evaluate("")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected errors: %v %v", evalErrs, err)
	}
	if len(q.Items) != 0 || q.TotalMM3 != 0 {
		t.Errorf("empty source should produce an empty quote, got %+v", q)
	}
}

func TestEvaluate_TwoItemQuote(t *testing.T) {
	source := `
;; north sill and a matching cap piece
(profile :name "sill" :length 1000 :width 700 :thickness 100
         :lip-width 150 :lip-height 200 :edge :chamfer :edge-depth 50)
(profile :name "cap" :length 500 :width 300 :thickness 30
         :lip-width 60 :lip-height 80 :edge :bullnose :edge-depth 10 :quantity 2)
`
	q, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected errors: %v %v", evalErrs, err)
	}
	if len(q.Items) != 2 {
		t.Fatalf("%d items, want 2", len(q.Items))
	}

	sill := q.Items[0]
	if sill.Name != "sill" || !sill.Valid() {
		t.Fatalf("sill item = %+v", sill)
	}
	if sill.Volume.Unit != 98_750_000 {
		t.Errorf("sill volume = %v, want 98750000", sill.Volume.Unit)
	}

	capItem := q.Items[1]
	if capItem.Name != "cap" || !capItem.Valid() {
		t.Fatalf("cap item = %+v", capItem)
	}
	if capItem.Volume.Total != 2*capItem.Volume.Unit {
		t.Errorf("cap total = %v, want twice the unit volume", capItem.Volume.Total)
	}

	if want := sill.Volume.Total + capItem.Volume.Total; math.Abs(q.TotalMM3-want) > 1e-6 {
		t.Errorf("quote total = %v, want %v", q.TotalMM3, want)
	}
}

func TestEvaluate_InvalidItemIsNotFatal(t *testing.T) {
	source := `
(profile :name "good" :length 1000 :width 700 :thickness 100
         :lip-width 150 :lip-height 200)
(profile :name "bad" :length 1000 :width 700 :thickness 100
         :lip-width 700 :lip-height 200)
`
	q, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected errors: %v %v", evalErrs, err)
	}
	if len(q.Items) != 2 {
		t.Fatalf("%d items, want 2", len(q.Items))
	}

	good, bad := q.Items[0], q.Items[1]
	if !good.Valid() {
		t.Errorf("good item has violations: %v", good.Violations)
	}
	if bad.Valid() {
		t.Error("bad item (lip as wide as slab) should carry violations")
	}
	if bad.Volume.Unit != 0 {
		t.Errorf("invalid item must not get a volume, got %v", bad.Volume.Unit)
	}

	// The batch total only counts the valid item.
	if q.TotalMM3 != good.Volume.Total {
		t.Errorf("total = %v, want %v (valid items only)", q.TotalMM3, good.Volume.Total)
	}
}

func TestEvaluate_ParseError(t *testing.T) {
	q, evalErrs, err := NewEngine().Evaluate(`(profile :width`)
	if err != nil {
		t.Fatalf("parse errors should not be fatal: %v", err)
	}
	if q != nil {
		t.Error("expected nil quote on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluate_FreshSandboxPerCall(t *testing.T) {
	e := NewEngine()
	src := `(profile :length 1 :width 2 :thickness 3 :lip-width 1 :lip-height 1)`

	q1, _, err := e.Evaluate(src)
	if err != nil {
		t.Fatal(err)
	}
	q2, _, err := e.Evaluate(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(q1.Items) != 1 || len(q2.Items) != 1 {
		t.Errorf("items leaked across evaluations: %d then %d", len(q1.Items), len(q2.Items))
	}
}
