package section

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-scholarform/pkg/validation"
)

var (
	// ErrWordLimitExceeded reports an edit whose text is over the field's word
	// limit. The section keeps its previous state.
	ErrWordLimitExceeded = errors.New("section: word limit exceeded")
	// ErrIndexOutOfRange reports a list patch addressing a missing entry.
	ErrIndexOutOfRange = errors.New("section: entry index out of range")
	// ErrUnsupportedPatch reports a patch kind the section cannot apply, such
	// as Add on a scalar section.
	ErrUnsupportedPatch = errors.New("section: unsupported patch")
)

// Patch is an explicit state change request. The concrete kinds are Set,
// Add, Remove and SetEntry.
type Patch interface {
	isPatch()
}

// Set replaces one field of a scalar section.
type Set struct {
	Field string
	Value any
}

// Add appends an empty entry to a list section.
type Add struct{}

// Remove deletes the entry at Index from a list section.
type Remove struct {
	Index int
}

// SetEntry replaces one field of the entry at Index.
type SetEntry struct {
	Index int
	Field string
	Value any
}

func (Set) isPatch()      {}
func (Add) isPatch()      {}
func (Remove) isPatch()   {}
func (SetEntry) isPatch() {}

// Limits maps field names to word limits.
type Limits map[string]int

// Admit checks value against the word limit of field. Fields without a
// limit, non-text values and the empty string are always admitted.
func (l Limits) Admit(field string, value any) error {
	max, ok := l[field]
	if !ok {
		return nil
	}
	text, ok := value.(string)
	if !ok {
		return nil
	}
	if validation.WithinWordLimit(text, max) {
		return nil
	}
	return fmt.Errorf("%w: %s has %d words, limit is %d", ErrWordLimitExceeded, field, validation.WordCount(text), max)
}
