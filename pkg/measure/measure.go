package measure

import "math"

// Kind enumerates the shapes the engine can measure.
type Kind int

const (
	KindUnknown Kind = iota // unselected or unrecognised
	KindCube
	KindBox
	KindCylinder
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Canonical labels and units attached to measurements.
const (
	LabelVolume      = "Volume"
	LabelSurfaceArea = "Surface Area"
	LabelArea        = "Area"

	UnitVolume = "cm³"
	UnitArea   = "cm²"
)

// Measurement is one labeled quantity of a Result.
type Measurement struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Result is the ordered output of one calculation. Volume precedes
// surface area when both are present.
type Result []Measurement

// Find returns the measurement with the given label.
func (r Result) Find(label string) (Measurement, bool) {
	for _, m := range r {
		if m.Label == label {
			return m, true
		}
	}
	return Measurement{}, false
}

func volume(v float64) Measurement {
	return Measurement{Label: LabelVolume, Value: v, Unit: UnitVolume}
}

func surfaceArea(v float64) Measurement {
	return Measurement{Label: LabelSurfaceArea, Value: v, Unit: UnitArea}
}

// Cube measures a cube with the given side length.
func Cube(side float64) Result {
	return Result{
		volume(side * side * side),
		surfaceArea(6 * side * side),
	}
}

// Box measures a rectangular box.
func Box(length, width, height float64) Result {
	return Result{
		volume(length * width * height),
		surfaceArea(2 * (length*width + length*height + width*height)),
	}
}

// Cylinder measures a closed right circular cylinder.
func Cylinder(radius, height float64) Result {
	return Result{
		volume(math.Pi * radius * radius * height),
		surfaceArea(2 * math.Pi * radius * (radius + height)),
	}
}

// Triangle measures the area of a triangle from its base and height.
func Triangle(base, height float64) Result {
	return Result{
		{Label: LabelArea, Value: 0.5 * base * height, Unit: UnitArea},
	}
}
