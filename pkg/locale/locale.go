// Package locale renders measurement output and validation feedback for
// display. Translations live in an x/text catalog keyed by the English
// text, so an unsupported locale falls back to English.
package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
)

// DefaultTag is the locale used when none is configured.
const DefaultTag = "id"

// DefaultDecimals is the display precision for measurement values.
const DefaultDecimals = 2

// Message keys.
const (
	msgUnknownShape    = "Unrecognized shape."
	msgCubeInvalid     = "Side must be greater than 0."
	msgBoxInvalid      = "Length, width, and height must be greater than 0."
	msgCylinderInvalid = "Radius and height must be greater than 0."
	msgTriangleInvalid = "Base and height must be greater than 0."
	msgCalculateTitle  = "Calculate %s"
	msgResultsHeading  = "Calculation Results"
	msgChooseShape     = "Choose a Geometric Shape"
	msgOutOfRange      = "Result is too large to display."
)

var shapeNames = map[measure.Kind]string{
	measure.KindCube:     "Cube",
	measure.KindBox:      "Box",
	measure.KindCylinder: "Cylinder",
	measure.KindTriangle: "Triangle",
}

var shapeDescriptions = map[measure.Kind]string{
	measure.KindCube:     "Calculate the volume and surface area of a cube.",
	measure.KindBox:      "Calculate the volume and surface area of a box.",
	measure.KindCylinder: "Calculate the volume and surface area of a cylinder.",
	measure.KindTriangle: "Calculate the area of a triangle.",
}

var dimensionLabels = map[string]string{
	shape.DimSide:   "Side (cm)",
	shape.DimLength: "Length (cm)",
	shape.DimWidth:  "Width (cm)",
	shape.DimHeight: "Height (cm)",
	shape.DimRadius: "Radius (cm)",
	shape.DimBase:   "Base (cm)",
}

var invalidMessages = map[measure.Kind]string{
	measure.KindCube:     msgCubeInvalid,
	measure.KindBox:      msgBoxInvalid,
	measure.KindCylinder: msgCylinderInvalid,
	measure.KindTriangle: msgTriangleInvalid,
}

var indonesian = map[string]string{
	measure.LabelVolume:      "Volume",
	measure.LabelSurfaceArea: "Luas Permukaan",
	measure.LabelArea:        "Luas",

	"Cube":     "Kubus",
	"Box":      "Balok",
	"Cylinder": "Tabung",
	"Triangle": "Segitiga",

	"Calculate the volume and surface area of a cube.":     "Hitung volume dan luas permukaan kubus.",
	"Calculate the volume and surface area of a box.":      "Hitung volume dan luas permukaan balok.",
	"Calculate the volume and surface area of a cylinder.": "Hitung volume dan luas permukaan tabung.",
	"Calculate the area of a triangle.":                    "Hitung luas segitiga.",

	"Side (cm)":   "Panjang Sisi (cm)",
	"Length (cm)": "Panjang (cm)",
	"Width (cm)":  "Lebar (cm)",
	"Height (cm)": "Tinggi (cm)",
	"Radius (cm)": "Jari-jari (cm)",
	"Base (cm)":   "Alas (cm)",

	msgUnknownShape:    "Bangun ruang tidak dikenal.",
	msgCubeInvalid:     "Sisi harus lebih besar dari 0.",
	msgBoxInvalid:      "Panjang, lebar, dan tinggi harus lebih besar dari 0.",
	msgCylinderInvalid: "Jari-jari dan tinggi harus lebih besar dari 0.",
	msgTriangleInvalid: "Alas dan tinggi harus lebih besar dari 0.",
	msgCalculateTitle:  "Hitung %s",
	msgResultsHeading:  "Hasil Perhitungan",
	msgChooseShape:     "Pilih Bentuk Geometri",
	msgOutOfRange:      "Hasil terlalu besar untuk ditampilkan.",
}

// newCatalog builds the translation catalog. English needs no entries
// because keys are the English text.
func newCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range indonesian {
		if err := b.SetString(language.Indonesian, key, msg); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Localizer formats values and messages for one locale.
type Localizer struct {
	tag      language.Tag
	decimals int
	printer  *message.Printer
}

// New returns a Localizer for the given BCP 47 tag. A well-formed tag
// without translations renders English; an unparsable one is an error.
// decimals < 0 uses DefaultDecimals.
func New(tag string, decimals int) (*Localizer, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("locale: %q: %w", tag, err)
	}
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	return &Localizer{
		tag:      t,
		decimals: decimals,
		printer:  message.NewPrinter(t, message.Catalog(cat)),
	}, nil
}

// Tag returns the locale in use.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// FormatValue rounds v to the configured number of decimals using the
// locale's separators.
func (l *Localizer) FormatValue(v float64) string {
	return l.printer.Sprint(number.Decimal(v, number.Scale(l.decimals)))
}

// Label translates a measurement label.
func (l *Localizer) Label(label string) string {
	return l.printer.Sprintf(label)
}

// ShapeName returns the display name of a kind.
func (l *Localizer) ShapeName(k measure.Kind) string {
	name, ok := shapeNames[k]
	if !ok {
		return k.String()
	}
	return l.printer.Sprintf(name)
}

// ShapeDescription returns a one-line description of a kind.
func (l *Localizer) ShapeDescription(k measure.Kind) string {
	desc, ok := shapeDescriptions[k]
	if !ok {
		return ""
	}
	return l.printer.Sprintf(desc)
}

// DimensionLabel returns the input label for a dimension name.
func (l *Localizer) DimensionLabel(name string) string {
	label, ok := dimensionLabels[name]
	if !ok {
		return name
	}
	return l.printer.Sprintf(label)
}

// Title returns the calculator heading for a kind.
func (l *Localizer) Title(k measure.Kind) string {
	return l.printer.Sprintf(msgCalculateTitle, l.ShapeName(k))
}

// ResultsHeading returns the heading shown above a result list.
func (l *Localizer) ResultsHeading() string {
	return l.printer.Sprintf(msgResultsHeading)
}

// ListHeading returns the heading of the shape list.
func (l *Localizer) ListHeading() string {
	return l.printer.Sprintf(msgChooseShape)
}

// OutOfRange returns the message shown when a result overflows.
func (l *Localizer) OutOfRange() string {
	return l.printer.Sprintf(msgOutOfRange)
}

// ValidationMessage turns a shape validation error into the inline
// message shown next to the form.
func (l *Localizer) ValidationMessage(err error) string {
	var invalid *shape.InvalidDimensionsError
	if errors.As(err, &invalid) {
		if msg, ok := invalidMessages[invalid.Kind]; ok {
			return l.printer.Sprintf(msg)
		}
	}
	if errors.Is(err, shape.ErrUnknownShape) {
		return l.printer.Sprintf(msgUnknownShape)
	}
	return err.Error()
}
