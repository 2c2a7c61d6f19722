package sheet

import (
	"fmt"

	"github.com/chazu/shapecalc/pkg/shape"
)

// ValidationError describes a single structural problem in a sheet.
type ValidationError struct {
	EntryID EntryID // zero if sheet-level
	Message string
}

func (e ValidationError) Error() string {
	if e.EntryID.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("entry %s: %s", e.EntryID.Short(), e.Message)
}

// Validate runs structural checks on the sheet and returns every finding.
// An empty slice means the sheet is consistent. It never mutates the sheet.
func Validate(s *Sheet) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateOrder(s)...)
	errs = append(errs, validateNames(s)...)
	errs = append(errs, validateEntries(s)...)
	return errs
}

// validateOrder checks that Order and Entries describe the same set.
func validateOrder(s *Sheet) []ValidationError {
	var errs []ValidationError
	seen := make(map[EntryID]bool, len(s.Order))
	for _, id := range s.Order {
		if seen[id] {
			errs = append(errs, ValidationError{EntryID: id, Message: "listed more than once in order"})
			continue
		}
		seen[id] = true
		if s.Entries[id] == nil {
			errs = append(errs, ValidationError{EntryID: id, Message: "ordered entry does not exist"})
		}
	}
	for id := range s.Entries {
		if !seen[id] {
			errs = append(errs, ValidationError{EntryID: id, Message: "entry missing from order"})
		}
	}
	return errs
}

// validateNames checks that the name index agrees with entry names.
func validateNames(s *Sheet) []ValidationError {
	var errs []ValidationError
	for name, id := range s.NameIndex {
		e := s.Entries[id]
		if e == nil {
			errs = append(errs, ValidationError{
				EntryID: id,
				Message: fmt.Sprintf("name %q refers to a missing entry", name),
			})
			continue
		}
		if e.Name != name {
			errs = append(errs, ValidationError{
				EntryID: id,
				Message: fmt.Sprintf("name index says %q but entry is named %q", name, e.Name),
			})
		}
	}
	return errs
}

// validateEntries checks each entry's dimensions and result.
func validateEntries(s *Sheet) []ValidationError {
	var errs []ValidationError
	for id, e := range s.Entries {
		if e.ID != id {
			errs = append(errs, ValidationError{EntryID: id, Message: "stored under a different ID"})
		}
		if err := shape.Validate(e.Kind, e.Dims); err != nil {
			errs = append(errs, ValidationError{EntryID: id, Message: err.Error()})
		}
		if len(e.Result) == 0 {
			errs = append(errs, ValidationError{EntryID: id, Message: "entry has no result"})
		}
	}
	return errs
}
