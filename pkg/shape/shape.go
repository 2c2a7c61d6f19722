// Package shape is the boundary between user input and the measurement
// engine. It parses shape names, checks dimension sets and dispatches to
// the matching measure function. The engine itself never sees invalid input.
package shape

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/shapecalc/pkg/measure"
)

// Dimension names.
const (
	DimSide   = "side"
	DimLength = "length"
	DimWidth  = "width"
	DimHeight = "height"
	DimRadius = "radius"
	DimBase   = "base"
)

// ErrUnknownShape is returned for a shape selector that matches no kind.
var ErrUnknownShape = errors.New("unrecognized shape")

// Dimensions maps a dimension name to its value.
type Dimensions map[string]float64

// aliases maps accepted selector spellings to kinds.
var aliases = map[string]measure.Kind{
	"cube":     measure.KindCube,
	"kubus":    measure.KindCube,
	"box":      measure.KindBox,
	"cuboid":   measure.KindBox,
	"balok":    measure.KindBox,
	"cylinder": measure.KindCylinder,
	"tabung":   measure.KindCylinder,
	"triangle": measure.KindTriangle,
	"segitiga": measure.KindTriangle,
}

// required lists the dimensions of each kind in input order.
var required = map[measure.Kind][]string{
	measure.KindCube:     {DimSide},
	measure.KindBox:      {DimLength, DimWidth, DimHeight},
	measure.KindCylinder: {DimRadius, DimHeight},
	measure.KindTriangle: {DimBase, DimHeight},
}

// All returns the supported kinds in display order.
func All() []measure.Kind {
	return []measure.Kind{
		measure.KindCube,
		measure.KindBox,
		measure.KindCylinder,
		measure.KindTriangle,
	}
}

// ParseKind resolves a shape selector. Matching is case-insensitive.
func ParseKind(s string) (measure.Kind, error) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return measure.KindUnknown, fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
	return k, nil
}

// Required returns the dimension names a kind needs, or nil for an
// unknown kind. The returned slice is a copy.
func Required(k measure.Kind) []string {
	names, ok := required[k]
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

// InvalidDimensionsError reports every required dimension that is
// missing, non-positive or not finite.
type InvalidDimensionsError struct {
	Kind       measure.Kind
	Dimensions []string
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("%s: %s must be greater than 0", e.Kind, strings.Join(e.Dimensions, ", "))
}

// Validate checks dims against the requirements of k. It returns
// ErrUnknownShape for an unknown kind and *InvalidDimensionsError when any
// required dimension is missing, <= 0, NaN or infinite.
func Validate(k measure.Kind, dims Dimensions) error {
	names, ok := required[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownShape, k)
	}

	var bad []string
	for _, name := range names {
		v, present := dims[name]
		if !present || !(v > 0) || math.IsInf(v, 0) {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return &InvalidDimensionsError{Kind: k, Dimensions: bad}
	}
	return nil
}

// Calculate validates dims and runs the measurement for k. No result is
// returned when validation fails.
func Calculate(k measure.Kind, dims Dimensions) (measure.Result, error) {
	if err := Validate(k, dims); err != nil {
		return nil, err
	}

	switch k {
	case measure.KindCube:
		return measure.Cube(dims[DimSide]), nil
	case measure.KindBox:
		return measure.Box(dims[DimLength], dims[DimWidth], dims[DimHeight]), nil
	case measure.KindCylinder:
		return measure.Cylinder(dims[DimRadius], dims[DimHeight]), nil
	case measure.KindTriangle:
		return measure.Triangle(dims[DimBase], dims[DimHeight]), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownShape, k)
}
