package sheet

import (
	"crypto/sha256"
	"encoding/hex"
)

// EntryID is a content-addressed identifier for worksheet entries.
type EntryID string

// ZeroID is the empty entry ID.
const ZeroID EntryID = ""

// NewEntryID derives a stable ID from a path such as "defshape/tank".
func NewEntryID(path string) EntryID {
	sum := sha256.Sum256([]byte(path))
	return EntryID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether the ID is unset.
func (id EntryID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 8 hex characters, for logs and messages.
func (id EntryID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
