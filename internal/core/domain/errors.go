package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed input or an unexpected missing field.
	// The affected document is skipped and the run continues.
	ErrInvalidInput = errors.New("invalid input")

	// Contract violations.

	// ErrUnknownFormat indicates a format code outside the five recognised
	// families. It points at a retrieval-stage regression and aborts the run.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrIdentifierMismatch indicates the parution number inside a document
	// differs from the issue identifier it was delivered under. Aborts the run.
	ErrIdentifierMismatch = errors.New("issue identifier mismatch")

	// ErrContractViolation indicates schema drift the mapper does not
	// understand, such as an unknown element in the PCL sibling sequence.
	// The document is dropped.
	ErrContractViolation = errors.New("contract violation")
)

// IsFatal reports whether err must abort the whole run rather than the
// current document.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnknownFormat) || errors.Is(err, ErrIdentifierMismatch)
}
