package sheet

import (
	"fmt"

	"github.com/chazu/shapecalc/pkg/measure"
)

// Sheet is the top-level structure produced by evaluation. Each
// evaluation produces a new sheet; it is never mutated once returned.
type Sheet struct {
	Entries   map[EntryID]*Entry `json:"entries"`
	Order     []EntryID          `json:"order"`
	NameIndex map[string]EntryID `json:"name_index"`
}

// New creates an empty Sheet.
func New() *Sheet {
	return &Sheet{
		Entries:   make(map[EntryID]*Entry),
		NameIndex: make(map[string]EntryID),
	}
}

// Add appends an entry. Names must be unique within a sheet.
func (s *Sheet) Add(e *Entry) error {
	if e.Name == "" {
		return fmt.Errorf("sheet: entry has no name")
	}
	if _, ok := s.NameIndex[e.Name]; ok {
		return fmt.Errorf("sheet: duplicate entry name %q", e.Name)
	}
	s.Entries[e.ID] = e
	s.Order = append(s.Order, e.ID)
	s.NameIndex[e.Name] = e.ID
	return nil
}

// Lookup returns the entry with the given name, or nil.
func (s *Sheet) Lookup(name string) *Entry {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Entries[id]
}

// Get returns the entry with the given ID, or nil.
func (s *Sheet) Get(id EntryID) *Entry {
	return s.Entries[id]
}

// List returns the entries in insertion order.
func (s *Sheet) List() []*Entry {
	out := make([]*Entry, 0, len(s.Order))
	for _, id := range s.Order {
		if e := s.Entries[id]; e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (s *Sheet) Len() int {
	return len(s.Entries)
}

// Totals sums each measurement label across all entries, preserving the
// order in which labels first appear.
func (s *Sheet) Totals() measure.Result {
	var totals measure.Result
	index := make(map[string]int)
	for _, e := range s.List() {
		for _, m := range e.Result {
			i, ok := index[m.Label]
			if !ok {
				index[m.Label] = len(totals)
				totals = append(totals, measure.Measurement{Label: m.Label, Unit: m.Unit})
				i = len(totals) - 1
			}
			totals[i].Value += m.Value
		}
	}
	return totals
}
