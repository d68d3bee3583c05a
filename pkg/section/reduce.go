package section

import (
	"fmt"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// Patchable is implemented by record types that return patched copies.
type Patchable[T any] interface {
	With(field string, value any) (T, error)
}

// RecordState is the constraint for scalar section values.
type RecordState[T any] interface {
	model.State
	Patchable[T]
}

// EntryState is the constraint for list section entries.
type EntryState[E any] interface {
	model.Entry
	Patchable[E]
}

// ReduceRecord applies a Set patch to a scalar value. The input is never
// modified; on error the input is returned unchanged.
func ReduceRecord[T Patchable[T]](current T, p Patch, limits Limits) (T, error) {
	set, ok := p.(Set)
	if !ok {
		return current, fmt.Errorf("%w: %T on record", ErrUnsupportedPatch, p)
	}
	if err := limits.Admit(set.Field, set.Value); err != nil {
		return current, err
	}
	next, err := current.With(set.Field, set.Value)
	if err != nil {
		return current, err
	}
	return next, nil
}

// ReduceList applies a list patch. newEntry builds the value appended by Add;
// a nil newEntry appends the zero value. The input slice is never modified.
func ReduceList[E EntryState[E]](entries model.Entries[E], p Patch, newEntry func() E, limits Limits) (model.Entries[E], error) {
	switch patch := p.(type) {
	case Add:
		var entry E
		if newEntry != nil {
			entry = newEntry()
		}
		next := make(model.Entries[E], 0, len(entries)+1)
		next = append(next, entries...)
		return append(next, entry), nil

	case Remove:
		if patch.Index < 0 || patch.Index >= len(entries) {
			return entries, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, patch.Index, len(entries))
		}
		if len(entries) == 1 {
			return nil, nil
		}
		next := make(model.Entries[E], 0, len(entries)-1)
		next = append(next, entries[:patch.Index]...)
		return append(next, entries[patch.Index+1:]...), nil

	case SetEntry:
		if patch.Index < 0 || patch.Index >= len(entries) {
			return entries, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, patch.Index, len(entries))
		}
		if err := limits.Admit(patch.Field, patch.Value); err != nil {
			return entries, err
		}
		updated, err := entries[patch.Index].With(patch.Field, patch.Value)
		if err != nil {
			return entries, err
		}
		next := entries.Clone()
		next[patch.Index] = updated
		return next, nil

	default:
		return entries, fmt.Errorf("%w: %T on list", ErrUnsupportedPatch, p)
	}
}
