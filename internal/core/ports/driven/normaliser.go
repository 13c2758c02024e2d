package driven

import (
	"context"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Normaliser maps one BODACC schema family into announcement records.
// Implementations are stateless and safe for concurrent use.
type Normaliser interface {
	// Format returns the format code this normaliser handles.
	Format() domain.Format

	// RootElements returns the accepted root element names.
	RootElements() []string

	// Normalise produces one record per announcement in doc. Each record
	// starts as a clone of tmpl, which must not be modified.
	//
	// An error drops the whole document: ErrInvalidInput for malformed or
	// incomplete input, ErrContractViolation for schema drift.
	Normalise(ctx context.Context, doc *xmldoc.Document, tmpl *domain.Record) ([]*domain.Record, error)
}
