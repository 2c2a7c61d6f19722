package engine

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/chazu/shapecalc/pkg/measure"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cube :side 5)`,
			expect: `(cube "__kw_side" 5)`,
		},
		{
			name:   "multiple keywords",
			input:  `(box :length 10 :width 5)`,
			expect: `(box "__kw_length" 10 "__kw_width" 5)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(surface-area (shape "tank"))`,
			expect: `(surface_area (shape "tank"))`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:wall-thickness`,
			expect: `"__kw_wall-thickness"`,
		},
		{
			name:   "negative number preserved",
			input:  `(cube -5)`,
			expect: `(cube -5)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Shape builtins
// ---------------------------------------------------------------------------

// evalSheet evaluates source and fails the test on any error.
func evalSheet(t *testing.T, source string) *Result {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if res == nil || res.Sheet == nil {
		t.Fatal("expected non-nil result and sheet")
	}
	return res
}

// evalFails evaluates source and returns its eval errors, failing if
// evaluation succeeded or failed fatally.
func evalFails(t *testing.T, source string) []EvalError {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected eval error, got fatal: %v", err)
	}
	if res != nil {
		t.Fatal("expected nil result on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	return evalErrs
}

func errorsContain(errs []EvalError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func valueFloat(t *testing.T, res *Result) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(res.Value, 64)
	if err != nil {
		t.Fatalf("value %q is not a number: %v", res.Value, err)
	}
	return f
}

func TestDefshapeCube(t *testing.T) {
	res := evalSheet(t, `(defshape "die" (cube 5))`)

	s := res.Sheet
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	e := s.Lookup("die")
	if e == nil {
		t.Fatal("entry 'die' not found")
	}
	if e.Kind != measure.KindCube {
		t.Errorf("kind = %s, want cube", e.Kind)
	}
	if e.Dims["side"] != 5 {
		t.Errorf("side = %v, want 5", e.Dims["side"])
	}
	if len(e.Result) != 2 || e.Result[0].Value != 125 || e.Result[1].Value != 150 {
		t.Errorf("result = %+v", e.Result)
	}
	if e.ID.IsZero() {
		t.Error("entry should have an ID")
	}
}

func TestPositionalAndKeywordArgs(t *testing.T) {
	source := `
(defshape "a" (box 10 5 2))
(defshape "b" (box :height 2 :length 10 :width 5))
(defshape "c" (box 10 :height 2 :width 5))
`
	s := evalSheet(t, source).Sheet
	for _, name := range []string{"a", "b", "c"} {
		e := s.Lookup(name)
		if e == nil {
			t.Fatalf("entry %q not found", name)
		}
		if e.Result[0].Value != 100 || e.Result[1].Value != 160 {
			t.Errorf("%s: result = %+v, want [100 160]", name, e.Result)
		}
	}
}

func TestAllShapes(t *testing.T) {
	source := `
(defshape "die" (cube 5))
(defshape "crate" (box 10 5 2))
(defshape "tank" (cylinder :radius 7 :height 10))
(defshape "sail" (triangle :base 10 :height 8))
`
	s := evalSheet(t, source).Sheet
	if s.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", s.Len())
	}

	var names []string
	for _, e := range s.List() {
		names = append(names, e.Name)
	}
	if strings.Join(names, ",") != "die,crate,tank,sail" {
		t.Errorf("order = %v", names)
	}

	tank := s.Lookup("tank")
	if math.Abs(tank.Result[0].Value-1539.3804002589987) > 1e-9 {
		t.Errorf("tank volume = %v", tank.Result[0].Value)
	}
	sail := s.Lookup("sail")
	if len(sail.Result) != 1 || sail.Result[0].Value != 40 {
		t.Errorf("sail result = %+v", sail.Result)
	}
}

func TestFloatDimensions(t *testing.T) {
	s := evalSheet(t, `(defshape "x" (triangle 2.5 4))`).Sheet
	if got := s.Lookup("x").Result[0].Value; got != 5 {
		t.Errorf("area = %v, want 5", got)
	}
}

func TestVolumeArithmetic(t *testing.T) {
	res := evalSheet(t, `
(defshape "die" (cube 3))
(* 2 (volume (shape "die")))
`)
	if got := valueFloat(t, res); got != 54 {
		t.Errorf("value = %v, want 54", got)
	}
}

func TestSurfaceAreaAndArea(t *testing.T) {
	res := evalSheet(t, `(surface-area (cube 2))`)
	if got := valueFloat(t, res); got != 24 {
		t.Errorf("surface-area = %v, want 24", got)
	}

	res = evalSheet(t, `(area (triangle 10 8))`)
	if got := valueFloat(t, res); got != 40 {
		t.Errorf("area(triangle) = %v, want 40", got)
	}

	res = evalSheet(t, `(area (box 10 5 2))`)
	if got := valueFloat(t, res); got != 160 {
		t.Errorf("area(box) = %v, want 160", got)
	}
}

func TestVariableReference(t *testing.T) {
	source := `
(def side 4)
(defshape "d" (cube side))
`
	s := evalSheet(t, source).Sheet
	if got := s.Lookup("d").Result[0].Value; got != 64 {
		t.Errorf("volume = %v, want 64", got)
	}
}

func TestAnonymousShapesAreNotRecorded(t *testing.T) {
	s := evalSheet(t, `(volume (cube 2))`).Sheet
	if s.Len() != 0 {
		t.Errorf("expected empty sheet, got %d entries", s.Len())
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestInvalidDimensionIsEvalError(t *testing.T) {
	tests := []struct {
		source string
		substr string
	}{
		{`(cube 0)`, "side must be greater than 0"},
		{`(cube -5)`, "side must be greater than 0"},
		{`(box 10 5)`, "height must be greater than 0"},
		{`(cylinder :height 3)`, "radius must be greater than 0"},
		{`(triangle 0 0)`, "base, height must be greater than 0"},
	}
	for _, tt := range tests {
		errs := evalFails(t, tt.source)
		if !errorsContain(errs, tt.substr) {
			t.Errorf("%s: expected error containing %q, got %v", tt.source, tt.substr, errs)
		}
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		source string
		substr string
	}{
		{`(cube 1 2)`, "at most 1"},
		{`(cube :radius 2)`, "unknown dimension"},
		{`(cube "five")`, "expected number"},
		{`(volume 5)`, "expected shape measurement"},
		{`(volume (triangle 1 1))`, "has no volume"},
		{`(surface-area (triangle 1 1))`, "has no surface area"},
		{`(defshape "x")`, "defshape requires"},
		{`(defshape 5 (cube 1))`, "expected string"},
		{`(defshape "x" 5)`, "expected shape measurement"},
	}
	for _, tt := range tests {
		errs := evalFails(t, tt.source)
		if !errorsContain(errs, tt.substr) {
			t.Errorf("%s: expected error containing %q, got %v", tt.source, tt.substr, errs)
		}
	}
}

func TestShapeLookupError(t *testing.T) {
	errs := evalFails(t, `(volume (shape "ghost"))`)
	if !errorsContain(errs, "ghost") {
		t.Errorf("expected error mentioning 'ghost', got %v", errs)
	}
}

func TestDuplicateDefshape(t *testing.T) {
	errs := evalFails(t, `
(defshape "a" (cube 1))
(defshape "a" (cube 2))
`)
	if !errorsContain(errs, "duplicate") {
		t.Errorf("expected duplicate error, got %v", errs)
	}
}

func TestSexpString(t *testing.T) {
	m := &sexpMeasurement{
		kind: measure.KindCylinder,
		dims: map[string]float64{"radius": 7, "height": 10},
	}
	if got := m.SexpString(nil); got != "(cylinder :radius 7 :height 10)" {
		t.Errorf("SexpString() = %q", got)
	}
}

func TestEmptySourceStillWorks(t *testing.T) {
	res := evalSheet(t, "")
	if res.Sheet.Len() != 0 {
		t.Errorf("expected empty sheet, got %d entries", res.Sheet.Len())
	}
	if res.Value != "" {
		t.Errorf("expected empty value, got %q", res.Value)
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	res := evalSheet(t, "(+ 1 2)")
	if got := valueFloat(t, res); got != 3 {
		t.Errorf("value = %v, want 3", got)
	}
}
