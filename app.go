package main

import (
	"context"
	"log"

	"github.com/chazu/ashlar/pkg/engine"
	"github.com/chazu/ashlar/pkg/export"
	"github.com/chazu/ashlar/pkg/profile"
	"github.com/chazu/ashlar/pkg/render"
	"github.com/chazu/ashlar/pkg/section"
)

// App is the Wails backend. It exposes methods to the frontend via
// bindings. Every binding is a synchronous, stateless transform of the
// current field values; nothing survives between calls.
type App struct {
	ctx    context.Context
	engine *engine.Engine
}

// NewApp creates a new App with a batch scripting engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ParamsData is the JSON-serializable parameter set sent by the
// frontend on every field edit. The acquisition layer has already
// parsed field text to numbers; malformed fields arrive as zeroes and
// are caught by validation.
type ParamsData struct {
	L         float64 `json:"l"`
	W         float64 `json:"w"`
	T         float64 `json:"t"`
	Lw        float64 `json:"lw"`
	Lh        float64 `json:"lh"`
	EdgeDepth float64 `json:"edgeDepth"`
	EdgeType  string  `json:"edgeType"` // "chamfer" or "bullnose"
	Quantity  int     `json:"quantity"`
}

func (d ParamsData) params() profile.Params {
	return profile.Params{
		L:         d.L,
		W:         d.W,
		T:         d.T,
		Lw:        d.Lw,
		Lh:        d.Lh,
		EdgeDepth: d.EdgeDepth,
		EdgeType:  profile.ParseEdgeType(d.EdgeType),
		Quantity:  d.Quantity,
	}
}

// FieldErrorData is a JSON-serializable invariant violation.
type FieldErrorData struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldErrors(errs []profile.ValidationError) []FieldErrorData {
	out := make([]FieldErrorData, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldErrorData{Field: e.Field, Message: e.Message})
	}
	return out
}

// ComputeResult is the volume pipeline output for one parameter set.
// When invalid, the displays hold the placeholder dash rather than a
// zero, so the frontend never implies a zero-volume stone is a valid
// answer.
type ComputeResult struct {
	Valid        bool             `json:"valid"`
	Errors       []FieldErrorData `json:"errors"`
	UnitMM3      float64          `json:"unitMm3"`
	TotalMM3     float64          `json:"totalMm3"`
	UnitDisplay  string           `json:"unitDisplay"`
	TotalDisplay string           `json:"totalDisplay"`
}

// Compute validates the parameter set and, when valid, evaluates the
// closed-form volume. This is the primary binding called on every
// field edit.
func (a *App) Compute(data ParamsData) ComputeResult {
	p := data.params()

	if errs := profile.Validate(p); len(errs) > 0 {
		return ComputeResult{
			Valid:        false,
			Errors:       fieldErrors(errs),
			UnitDisplay:  VolumePlaceholder,
			TotalDisplay: VolumePlaceholder,
		}
	}

	b := profile.Volume(p)
	return ComputeResult{
		Valid:        true,
		Errors:       []FieldErrorData{},
		UnitMM3:      b.Unit,
		TotalMM3:     b.Total,
		UnitDisplay:  FormatVolumeMM3(b.Unit),
		TotalDisplay: FormatVolumeMM3(b.Total),
	}
}

// PlanResult carries the 2D drawing, or the violations that prevented it.
type PlanResult struct {
	Valid   bool               `json:"valid"`
	Errors  []FieldErrorData   `json:"errors"`
	Drawing render.PlanDrawing `json:"drawing"`
}

// Plan returns the annotated 2D cross-section for the given canvas
// size. Called when the frontend is in plan view.
func (a *App) Plan(data ParamsData, width, height int) PlanResult {
	p := data.params()
	if errs := profile.Validate(p); len(errs) > 0 {
		return PlanResult{Errors: fieldErrors(errs)}
	}
	return PlanResult{
		Valid:   true,
		Errors:  []FieldErrorData{},
		Drawing: render.Plan(p, render.DefaultPlanConfig(float64(width), float64(height))),
	}
}

// IsoResult carries the 3D view, or the violations that prevented it.
type IsoResult struct {
	Valid  bool             `json:"valid"`
	Errors []FieldErrorData `json:"errors"`
	View   render.IsoView   `json:"view"`
}

// Isometric returns the shaded isometric projection for the given
// canvas size. Called when the frontend is in 3D view.
func (a *App) Isometric(data ParamsData, width, height int) IsoResult {
	p := data.params()
	if errs := profile.Validate(p); len(errs) > 0 {
		return IsoResult{Errors: fieldErrors(errs)}
	}
	return IsoResult{
		Valid:  true,
		Errors: []FieldErrorData{},
		View:   render.Isometric(p, render.DefaultIsoConfig(float64(width), float64(height))),
	}
}

// AutoFitResult is the solved tangent-fit bullnose radius.
type AutoFitResult struct {
	OK      bool    `json:"ok"`
	Radius  float64 `json:"radius"`
	Message string  `json:"message,omitempty"`
}

// AutoFit solves for the bullnose radius tangent to the top and side
// faces through the inner lip corner. The frontend writes the radius
// back into the edge-depth field and reruns the pipeline.
func (a *App) AutoFit(lw, t float64) AutoFitResult {
	if lw <= 0 || t <= 0 {
		return AutoFitResult{Message: "lip width and thickness must be positive"}
	}
	return AutoFitResult{OK: true, Radius: profile.AutoFitRadius(lw, t)}
}

// ScriptItemData is one quote line in frontend form.
type ScriptItemData struct {
	Name         string           `json:"name,omitempty"`
	Valid        bool             `json:"valid"`
	Errors       []FieldErrorData `json:"errors"`
	UnitMM3      float64          `json:"unitMm3"`
	TotalMM3     float64          `json:"totalMm3"`
	UnitDisplay  string           `json:"unitDisplay"`
	TotalDisplay string           `json:"totalDisplay"`
	Quantity     int              `json:"quantity"`
}

// EvalErrorData is a JSON-serializable script error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is the full result of a batch script evaluation.
type ScriptResult struct {
	Items        []ScriptItemData `json:"items"`
	Errors       []EvalErrorData  `json:"errors"`
	TotalMM3     float64          `json:"totalMm3"`
	TotalDisplay string           `json:"totalDisplay"`
}

// EvaluateScript runs a batch quoting script and returns the computed
// line items. This is the binding behind the script editor pane.
func (a *App) EvaluateScript(source string) ScriptResult {
	result := ScriptResult{
		Items:        []ScriptItemData{},
		Errors:       []EvalErrorData{},
		TotalDisplay: VolumePlaceholder,
	}

	q, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout).
		log.Printf("EvaluateScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, it := range q.Items {
		item := ScriptItemData{
			Name:         it.Name,
			Valid:        it.Valid(),
			Errors:       fieldErrors(it.Violations),
			Quantity:     it.Params.Quantity,
			UnitDisplay:  VolumePlaceholder,
			TotalDisplay: VolumePlaceholder,
		}
		if item.Valid {
			item.UnitMM3 = it.Volume.Unit
			item.TotalMM3 = it.Volume.Total
			item.UnitDisplay = FormatVolumeMM3(it.Volume.Unit)
			item.TotalDisplay = FormatVolumeMM3(it.Volume.Total)
		}
		result.Items = append(result.Items, item)
	}

	result.TotalMM3 = q.TotalMM3
	if q.TotalMM3 > 0 {
		result.TotalDisplay = FormatVolumeMM3(q.TotalMM3)
	}
	return result
}

// ExportResult reports the outcome of an STL export.
type ExportResult struct {
	OK      bool   `json:"ok"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// ExportSTL writes the current profile as an STL mesh to path, using
// the same display-quality arc approximation the viewport shows.
func (a *App) ExportSTL(data ParamsData, path string) ExportResult {
	if err := export.SaveSTL(data.params(), section.DefaultArcSegments, path); err != nil {
		log.Printf("ExportSTL error: %v", err)
		return ExportResult{Message: err.Error()}
	}
	return ExportResult{OK: true, Path: path}
}
