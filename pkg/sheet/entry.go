package sheet

import (
	"github.com/chazu/shapecalc/pkg/measure"
	"github.com/chazu/shapecalc/pkg/shape"
)

// Entry is one named calculation in a worksheet.
type Entry struct {
	ID     EntryID          `json:"id"`
	Name   string           `json:"name"`
	Kind   measure.Kind     `json:"kind"`
	Dims   shape.Dimensions `json:"dims"`
	Result measure.Result   `json:"result"`
}

// NewEntry builds an entry whose ID is derived from its name.
func NewEntry(name string, kind measure.Kind, dims shape.Dimensions, result measure.Result) *Entry {
	return &Entry{
		ID:     NewEntryID("defshape/" + name),
		Name:   name,
		Kind:   kind,
		Dims:   dims,
		Result: result,
	}
}
