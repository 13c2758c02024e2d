package driven

import "github.com/custodia-labs/bodacc/internal/core/domain"

// NormaliserRegistry resolves format codes to normalisers.
type NormaliserRegistry interface {
	// Register adds a normaliser, replacing any for the same format.
	Register(normaliser Normaliser)

	// Resolve returns the normaliser for a format code.
	// Unknown codes return ErrUnknownFormat.
	Resolve(code string) (Normaliser, error)

	// Formats returns the registered formats in bulletin order.
	Formats() []domain.Format
}
