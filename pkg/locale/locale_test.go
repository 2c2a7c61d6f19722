package locale

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
)

func mustNew(t *testing.T, tag string, decimals int) *Localizer {
	t.Helper()
	l, err := New(tag, decimals)
	if err != nil {
		t.Fatalf("New(%q): %v", tag, err)
	}
	return l
}

func TestFormatValueEnglish(t *testing.T) {
	l := mustNew(t, "en", 2)
	tests := []struct {
		in     float64
		expect string
	}{
		{125, "125.00"},
		{40, "40.00"},
		{747.6990515543707, "747.70"},
	}
	for _, tt := range tests {
		if got := l.FormatValue(tt.in); got != tt.expect {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.expect)
		}
	}
	if got := l.FormatValue(1539.3804002589987); !strings.HasSuffix(got, "539.38") {
		t.Errorf("FormatValue(1539.38...) = %q", got)
	}
}

func TestFormatValueIndonesian(t *testing.T) {
	l := mustNew(t, "id", 2)
	if got := l.FormatValue(747.6990515543707); got != "747,70" {
		t.Errorf("FormatValue = %q, want %q", got, "747,70")
	}
}

func TestFormatValueDecimals(t *testing.T) {
	if got := mustNew(t, "en", 0).FormatValue(40.4); got != "40" {
		t.Errorf("0 decimals: got %q", got)
	}
	if got := mustNew(t, "en", -1).FormatValue(40); got != "40.00" {
		t.Errorf("default decimals: got %q", got)
	}
}

func TestLabels(t *testing.T) {
	id := mustNew(t, "id", 2)
	en := mustNew(t, "en", 2)

	tests := []struct {
		label  string
		id, en string
	}{
		{measure.LabelVolume, "Volume", "Volume"},
		{measure.LabelSurfaceArea, "Luas Permukaan", "Surface Area"},
		{measure.LabelArea, "Luas", "Area"},
	}
	for _, tt := range tests {
		if got := id.Label(tt.label); got != tt.id {
			t.Errorf("id Label(%q) = %q, want %q", tt.label, got, tt.id)
		}
		if got := en.Label(tt.label); got != tt.en {
			t.Errorf("en Label(%q) = %q, want %q", tt.label, got, tt.en)
		}
	}
}

func TestShapeCatalogue(t *testing.T) {
	l := mustNew(t, "id", 2)
	names := map[measure.Kind]string{
		measure.KindCube:     "Kubus",
		measure.KindBox:      "Balok",
		measure.KindCylinder: "Tabung",
		measure.KindTriangle: "Segitiga",
	}
	for k, want := range names {
		if got := l.ShapeName(k); got != want {
			t.Errorf("ShapeName(%s) = %q, want %q", k, got, want)
		}
		if l.ShapeDescription(k) == "" {
			t.Errorf("ShapeDescription(%s) is empty", k)
		}
	}
	if got := l.ShapeDescription(measure.KindTriangle); got != "Hitung luas segitiga." {
		t.Errorf("triangle description = %q", got)
	}
	if got := l.Title(measure.KindCube); got != "Hitung Kubus" {
		t.Errorf("Title(cube) = %q", got)
	}
	if got := l.ShapeName(measure.KindUnknown); got != "unknown" {
		t.Errorf("ShapeName(unknown) = %q", got)
	}
}

func TestDimensionLabels(t *testing.T) {
	l := mustNew(t, "id", 2)
	if got := l.DimensionLabel("side"); got != "Panjang Sisi (cm)" {
		t.Errorf("DimensionLabel(side) = %q", got)
	}
	if got := l.DimensionLabel("radius"); got != "Jari-jari (cm)" {
		t.Errorf("DimensionLabel(radius) = %q", got)
	}
	if got := l.DimensionLabel("depth"); got != "depth" {
		t.Errorf("DimensionLabel(depth) = %q", got)
	}
}

func TestValidationMessage(t *testing.T) {
	l := mustNew(t, "id", 2)
	tests := []struct {
		kind   measure.Kind
		dims   shape.Dimensions
		expect string
	}{
		{measure.KindCube, shape.Dimensions{"side": 0}, "Sisi harus lebih besar dari 0."},
		{measure.KindBox, shape.Dimensions{"length": 1, "width": -1, "height": 1}, "Panjang, lebar, dan tinggi harus lebih besar dari 0."},
		{measure.KindCylinder, shape.Dimensions{"height": 1}, "Jari-jari dan tinggi harus lebih besar dari 0."},
		{measure.KindTriangle, shape.Dimensions{}, "Alas dan tinggi harus lebih besar dari 0."},
		{measure.KindUnknown, shape.Dimensions{}, "Bangun ruang tidak dikenal."},
	}
	for _, tt := range tests {
		err := shape.Validate(tt.kind, tt.dims)
		if err == nil {
			t.Fatalf("%s: expected validation error", tt.kind)
		}
		if got := l.ValidationMessage(err); got != tt.expect {
			t.Errorf("%s: got %q, want %q", tt.kind, got, tt.expect)
		}
	}
}

func TestValidationMessageWrapped(t *testing.T) {
	l := mustNew(t, "en", 2)
	_, err := shape.ParseKind("sphere")
	wrapped := fmt.Errorf("calculate: %w", err)
	if got := l.ValidationMessage(wrapped); got != "Unrecognized shape." {
		t.Errorf("got %q", got)
	}
	if got := l.ValidationMessage(errors.New("boom")); got != "boom" {
		t.Errorf("got %q", got)
	}
}

func TestUnsupportedLocaleFallsBackToEnglish(t *testing.T) {
	l := mustNew(t, "fr", 2)
	if got := l.Label(measure.LabelSurfaceArea); got != "Surface Area" {
		t.Errorf("got %q", got)
	}
	if got := l.ListHeading(); got != "Choose a Geometric Shape" {
		t.Errorf("got %q", got)
	}
}

func TestUnparsableTagIsAnError(t *testing.T) {
	for _, tag := range []string{"zz-!!", "not a tag"} {
		if l, err := New(tag, 2); err == nil {
			t.Errorf("New(%q) = %v, want error", tag, l.Tag())
		}
	}
}

func TestHeadings(t *testing.T) {
	id := mustNew(t, "id", 2)
	en := mustNew(t, "en", 2)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"id list", id.ListHeading(), "Pilih Bentuk Geometri"},
		{"id results", id.ResultsHeading(), "Hasil Perhitungan"},
		{"en list", en.ListHeading(), "Choose a Geometric Shape"},
		{"en results", en.ResultsHeading(), "Calculation Results"},
		{"id out of range", id.OutOfRange(), "Hasil terlalu besar untuk ditampilkan."},
		{"en out of range", en.OutOfRange(), "Result is too large to display."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
