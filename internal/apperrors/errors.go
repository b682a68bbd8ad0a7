package apperrors

import (
	"errors"
	"fmt"
)

// ErrEmptySource indicates that the ledger had no entries to export.
// It is reported as information, never returned as a failure.
var ErrEmptySource = errors.New("no entries to export")

// ErrMissingRequiredField indicates that a required header or line element is absent.
var ErrMissingRequiredField = errors.New("missing required field")

// ErrMalformedValue indicates that numeric or date text could not be parsed.
var ErrMalformedValue = errors.New("malformed value")

// ErrMalformedDocument indicates that the interchange file is not well-formed
// XML or does not have the expected root element.
var ErrMalformedDocument = errors.New("malformed document")

// PartialImportError reports an import that stopped on a line after earlier
// lines had already been inserted. Inserted lines are not rolled back.
type PartialImportError struct {
	// Inserted is the number of lines committed before the failure.
	Inserted int

	// FailureIndex is the zero-based position of the failing Cuentas element.
	FailureIndex int

	// Err is the cause.
	Err error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import stopped at line %d after %d inserted: %v", e.FailureIndex+1, e.Inserted, e.Err)
}

func (e *PartialImportError) Unwrap() error {
	return e.Err
}
