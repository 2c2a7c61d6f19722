package main

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/chazu/shapecalc/internal/config"
	"github.com/chazu/shapecalc/pkg/engine"
	"github.com/chazu/shapecalc/pkg/kernel"
	"github.com/chazu/shapecalc/pkg/kernel/manifold"
	"github.com/chazu/shapecalc/pkg/kernel/sdfx"
	"github.com/chazu/shapecalc/pkg/locale"
	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
	"github.com/chazu/shapecalc/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to entries.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel

	mu     sync.RWMutex
	cfg    config.Config
	locale *locale.Localizer
}

// DimensionInfo describes one input field of the calculator form.
type DimensionInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ShapeInfo is one row of the shape list.
type ShapeInfo struct {
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Dimensions  []DimensionInfo `json:"dimensions"`
}

// ResultData is a measurement with its display text.
type ResultData struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Formatted string  `json:"formatted"`
}

// CalcResult is returned by Calculate. Results is empty whenever Error is set.
type CalcResult struct {
	Kind    string       `json:"kind"`
	Results []ResultData `json:"results"`
	Error   string       `json:"error"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// PreviewResult is returned by Preview. MeshVolume is the volume enclosed
// by the mesh, for triangles the area times the unit prism depth.
type PreviewResult struct {
	Mesh       *MeshData `json:"mesh"`
	MeshVolume float64   `json:"meshVolume"`
	Error      string    `json:"error"`
}

// Headings holds the static page titles.
type Headings struct {
	List    string `json:"list"`
	Results string `json:"results"`
}

// previewTolerance is the relative difference between mesh and calculated
// volume above which a preview is logged as inaccurate.
const previewTolerance = 0.05

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EntryData is one named worksheet entry.
type EntryData struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Results []ResultData `json:"results"`
}

// EvalResult is the full worksheet result returned to the frontend.
type EvalResult struct {
	Value   string          `json:"value"`
	Entries []EntryData     `json:"entries"`
	Totals  []ResultData    `json:"totals"`
	Meshes  []MeshData      `json:"meshes"`
	Errors  []EvalErrorData `json:"errors"`
}

// NewApp creates a new App from the loaded configuration.
func NewApp(cfg config.Config) *App {
	loc, err := locale.New(cfg.Display.Locale, cfg.Display.Decimals)
	if err != nil {
		log.Printf("locale %q unavailable, using defaults: %v", cfg.Display.Locale, err)
		loc, _ = locale.New(locale.DefaultTag, locale.DefaultDecimals)
	}
	return &App{
		engine: engine.NewEngine(engine.WithTimeout(cfg.Engine.EvalTimeout)),
		kernel: newKernel(cfg.Preview),
		cfg:    cfg,
		locale: loc,
	}
}

// newKernel selects the preview kernel. Manifold needs a cgo build; without
// it the sdfx kernel is used.
func newKernel(cfg config.PreviewConfig) kernel.Kernel {
	if cfg.Kernel == "manifold" {
		k, err := manifold.New(cfg.Segments)
		if err == nil {
			return k
		}
		log.Printf("preview kernel: %v, using sdfx", err)
	} else if cfg.Kernel != "" && cfg.Kernel != "sdfx" {
		log.Printf("preview kernel: unknown kernel %q, using sdfx", cfg.Kernel)
	}
	return sdfx.New(cfg.MeshCells)
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	log.Printf("shapecalc started (locale %s, %d decimals)", a.localizer().Tag(), a.cfg.Display.Decimals)
}

func (a *App) localizer() *locale.Localizer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.locale
}

// Locale returns the active locale tag.
func (a *App) Locale() string {
	return a.localizer().Tag().String()
}

// SetLocale switches the display language and persists the preference.
// An unparsable tag is rejected and nothing is saved.
func (a *App) SetLocale(tag string) string {
	a.mu.Lock()
	loc, err := locale.New(tag, a.cfg.Display.Decimals)
	if err != nil {
		a.mu.Unlock()
		log.Printf("SetLocale: %v", err)
		return err.Error()
	}
	a.locale = loc
	a.cfg.Display.Locale = loc.Tag().String()
	cfg := a.cfg
	a.mu.Unlock()

	if err := config.Save(cfg); err != nil {
		log.Printf("SetLocale: saving preference: %v", err)
		return err.Error()
	}
	return ""
}

// Headings returns the localized page titles.
func (a *App) Headings() Headings {
	loc := a.localizer()
	return Headings{
		List:    loc.ListHeading(),
		Results: loc.ResultsHeading(),
	}
}

// Shapes lists the available shapes in display order.
func (a *App) Shapes() []ShapeInfo {
	loc := a.localizer()
	kinds := shape.All()
	out := make([]ShapeInfo, 0, len(kinds))
	for _, k := range kinds {
		dims := []DimensionInfo{}
		for _, name := range shape.Required(k) {
			dims = append(dims, DimensionInfo{Name: name, Label: loc.DimensionLabel(name)})
		}
		out = append(out, ShapeInfo{
			Kind:        k.String(),
			Name:        loc.ShapeName(k),
			Title:       loc.Title(k),
			Description: loc.ShapeDescription(k),
			Dimensions:  dims,
		})
	}
	return out
}

// Calculate validates the form values and computes the shape's measurements.
// On a validation failure the result list is empty and Error carries the
// localized message.
func (a *App) Calculate(kind string, dims map[string]float64) CalcResult {
	loc := a.localizer()
	result := CalcResult{Kind: kind, Results: []ResultData{}}

	k, err := shape.ParseKind(kind)
	if err != nil {
		log.Printf("Calculate: %v", err)
		result.Error = loc.ValidationMessage(err)
		return result
	}
	result.Kind = k.String()

	res, err := shape.Calculate(k, dims)
	if err != nil {
		result.Error = loc.ValidationMessage(err)
		return result
	}
	if !finite(res) {
		log.Printf("Calculate %s: result out of range: %v", k, res)
		result.Error = loc.OutOfRange()
		return result
	}
	result.Results = resultData(loc, res)
	return result
}

// Preview builds the 3D preview mesh for a single shape.
func (a *App) Preview(kind string, dims map[string]float64) PreviewResult {
	loc := a.localizer()

	k, err := shape.ParseKind(kind)
	if err != nil {
		return PreviewResult{Error: loc.ValidationMessage(err)}
	}

	res, err := shape.Calculate(k, dims)
	if err != nil {
		return PreviewResult{Error: loc.ValidationMessage(err)}
	}
	if !finite(res) {
		return PreviewResult{Error: loc.OutOfRange()}
	}

	m, err := tessellate.Preview(a.kernel, k, dims)
	if err != nil {
		log.Printf("Preview error: %v", err)
		return PreviewResult{Error: loc.ValidationMessage(err)}
	}

	meshVolume := m.Volume()
	if dev := deviation(res[0].Value, meshVolume); dev > previewTolerance {
		log.Printf("Preview %s: mesh %s %.4g differs from calculated %.4g by %.1f%%",
			k, res[0].Label, meshVolume, res[0].Value, dev*100)
	}

	md := meshData(m, 0)
	return PreviewResult{Mesh: &md, MeshVolume: meshVolume}
}

// Evaluate takes worksheet source and returns entries, totals, meshes and errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	loc := a.localizer()
	result := EvalResult{
		Entries: []EntryData{},
		Totals:  []ResultData{},
		Meshes:  []MeshData{},
		Errors:  []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a worksheet.
	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
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

	totals := res.Sheet.Totals()
	for _, e := range res.Sheet.List() {
		if !finite(e.Result) {
			result.Errors = append(result.Errors, EvalErrorData{
				Message: e.Name + ": " + loc.OutOfRange(),
			})
		}
	}
	if len(result.Errors) == 0 && !finite(totals) {
		result.Errors = append(result.Errors, EvalErrorData{Message: loc.OutOfRange()})
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Value = res.Value
	for _, e := range res.Sheet.List() {
		result.Entries = append(result.Entries, EntryData{
			ID:      string(e.ID),
			Name:    e.Name,
			Kind:    e.Kind.String(),
			Results: resultData(loc, e.Result),
		})
	}
	result.Totals = resultData(loc, totals)

	// Step 3: Tessellate the worksheet into triangle meshes.
	meshes, err := tessellate.Tessellate(res.Sheet, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 4: Convert kernel meshes to the frontend MeshData format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, meshData(m, i))
	}

	return result
}

// finite reports whether every value of res can be sent to the frontend.
// JSON has no encoding for NaN or infinities.
func finite(res measure.Result) bool {
	for _, m := range res {
		if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
			return false
		}
	}
	return true
}

// deviation is the relative difference of got from want.
func deviation(want, got float64) float64 {
	if want == 0 {
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}

func resultData(loc *locale.Localizer, res measure.Result) []ResultData {
	out := make([]ResultData, 0, len(res))
	for _, m := range res {
		out = append(out, ResultData{
			Label:     loc.Label(m.Label),
			Value:     m.Value,
			Unit:      m.Unit,
			Formatted: loc.FormatValue(m.Value) + " " + m.Unit,
		})
	}
	return out
}

func meshData(m *kernel.Mesh, i int) MeshData {
	return MeshData{
		Vertices: m.Vertices,
		Normals:  m.Normals,
		Indices:  m.Indices,
		Name:     m.Name,
		Color:    colorPalette[i%len(colorPalette)],
	}
}
