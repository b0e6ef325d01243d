package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a transaction id does not resolve to a row.
var ErrNotFound = errors.New("transaction not found")

// MissingFieldError reports a required field that was absent from the raw
// input. Index is the 1-based position within a batch, 0 outside of one.
type MissingFieldError struct {
	Field string
	Index int
}

func (e *MissingFieldError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("missing field %q in item %d", e.Field, e.Index)
	}

	return fmt.Sprintf("missing field %q", e.Field)
}

// InvalidFormatError reports a field that was present but could not be
// parsed or was blank.
type InvalidFormatError struct {
	Field string
	Index int
}

func (e *InvalidFormatError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("invalid %s in item %d", e.Field, e.Index)
	}

	return fmt.Sprintf("invalid %s", e.Field)
}

// ReferenceNotFoundError reports a foreign key that does not resolve to an
// existing row. Kind is the referenced entity ("account" or "category").
type ReferenceNotFoundError struct {
	Kind  string
	ID    int64
	Index int
}

func (e *ReferenceNotFoundError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("unknown %s %d in item %d", e.Kind, e.ID, e.Index)
	}

	return fmt.Sprintf("unknown %s %d", e.Kind, e.ID)
}

// ConflictError reports a unique-name collision that survived the
// lookup-create-relookup cycle.
type ConflictError struct {
	Kind string
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// IsValidation reports whether err was produced by the validator and
// describes a problem with the caller's input rather than a store failure.
func IsValidation(err error) bool {
	var (
		missing   *MissingFieldError
		format    *InvalidFormatError
		reference *ReferenceNotFoundError
	)

	return errors.As(err, &missing) || errors.As(err, &format) || errors.As(err, &reference)
}

// markIndex annotates a validation error with its 1-based batch position.
// Non-validation errors pass through unchanged.
func markIndex(err error, idx int) error {
	switch e := err.(type) {
	case *MissingFieldError:
		e.Index = idx
	case *InvalidFormatError:
		e.Index = idx
	case *ReferenceNotFoundError:
		e.Index = idx
	}

	return err
}
