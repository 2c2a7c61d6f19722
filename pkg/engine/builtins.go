package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
	"github.com/chazu/shapecalc/pkg/sheet"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms worksheet source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: surface-area -> surface_area
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp type for passing measurements through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMeasurement carries one validated calculation between builtins.
type sexpMeasurement struct {
	kind   measure.Kind
	dims   shape.Dimensions
	result measure.Result
}

func (m *sexpMeasurement) SexpString(ps *zygo.PrintState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s", m.kind)
	for _, name := range shape.Required(m.kind) {
		fmt.Fprintf(&b, " :%s %g", name, m.dims[name])
	}
	b.WriteString(")")
	return b.String()
}
func (m *sexpMeasurement) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toMeasurement extracts a measurement produced by a shape builtin.
func toMeasurement(s zygo.Sexp) (*sexpMeasurement, error) {
	if m, ok := s.(*sexpMeasurement); ok {
		return m, nil
	}
	return nil, fmt.Errorf("expected shape measurement, got %T (%s)", s, s.SexpString(nil))
}

// dimensionsFromArgs collects a dimension set for kind. Positional
// arguments fill dimensions in shape.Required order; keywords name them
// directly and win over positionals.
func dimensionsFromArgs(kind measure.Kind, args []zygo.Sexp) (shape.Dimensions, error) {
	names := shape.Required(kind)
	pa := parseArgs(args)

	if len(pa.positional) > len(names) {
		return nil, fmt.Errorf("expected at most %d arguments (%s), got %d",
			len(names), strings.Join(names, ", "), len(pa.positional))
	}

	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}

	dims := make(shape.Dimensions, len(names))
	for i, arg := range pa.positional {
		f, err := toFloat64(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		dims[names[i]] = f
	}
	for name, arg := range pa.kw {
		if !allowed[name] {
			return nil, fmt.Errorf("unknown dimension :%s, expected %s", name, strings.Join(names, ", "))
		}
		f, err := toFloat64(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		dims[name] = f
	}
	return dims, nil
}

// measurementValue returns the first measurement with one of the labels.
func measurementValue(fn string, args []zygo.Sexp, labels ...string) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", fn, len(args))
	}
	m, err := toMeasurement(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
	}
	for _, label := range labels {
		if v, ok := m.result.Find(label); ok {
			return &zygo.SexpFloat{Val: v.Value}, nil
		}
	}
	return zygo.SexpNull, fmt.Errorf("%s: a %s has no %s", fn, m.kind, strings.ToLower(labels[0]))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// shapeBuiltins maps builtin names to the kinds they measure.
var shapeBuiltins = map[string]measure.Kind{
	"cube":     measure.KindCube,
	"box":      measure.KindBox,
	"cylinder": measure.KindCylinder,
	"triangle": measure.KindTriangle,
}

// registerBuiltins installs the worksheet builtins into a zygomys
// environment. Named shapes are recorded in s during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *sheet.Sheet) {

	// -----------------------------------------------------------------------
	// (cube 5) (box :length 10 :width 5 :height 2) (cylinder 7 10) ...
	// -----------------------------------------------------------------------
	for fn, kind := range shapeBuiltins {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			dims, err := dimensionsFromArgs(kind, args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			result, err := shape.Calculate(kind, dims)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpMeasurement{kind: kind, dims: dims, result: result}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (defshape "tank" (cylinder 7 10))
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}

		entryName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		m, err := toMeasurement(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}

		if err := s.Add(sheet.NewEntry(entryName, m.kind, m.dims, m.result)); err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		return m, nil
	})

	// -----------------------------------------------------------------------
	// (shape "tank")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}

		entryName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}

		e := s.Lookup(entryName)
		if e == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", entryName)
		}
		return &sexpMeasurement{kind: e.Kind, dims: e.Dims, result: e.Result}, nil
	})

	// -----------------------------------------------------------------------
	// (volume m) (surface-area m) (area m)
	//
	// surface-area is registered as "surface_area" because zygomys does not
	// support hyphens in identifiers. area returns the area of a flat shape
	// or the surface area of a solid.
	// -----------------------------------------------------------------------
	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return measurementValue("volume", args, measure.LabelVolume)
	})
	env.AddFunction("surface_area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return measurementValue("surface-area", args, measure.LabelSurfaceArea)
	})
	env.AddFunction("area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return measurementValue("area", args, measure.LabelArea, measure.LabelSurfaceArea)
	})
}
