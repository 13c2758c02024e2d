package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// Pipeline normalises streams of envelopes.
type Pipeline interface {
	// Run reads newline-delimited envelopes from r and emits the records
	// of each document before reading the next line. It returns on the
	// first run-fatal error or when r is exhausted.
	Run(ctx context.Context, r io.Reader) (domain.RunStats, error)

	// Process normalises a single envelope and returns its records
	// without emitting them.
	Process(ctx context.Context, env *domain.Envelope) ([]*domain.Record, error)
}

// FormatCatalogue describes the supported schema families.
type FormatCatalogue interface {
	// Catalogue returns every supported format with its root elements.
	Catalogue() []FormatInfo
}

// FormatInfo describes one supported format.
type FormatInfo struct {
	Format       domain.Format `json:"format"`
	RootElements []string      `json:"root_elements"`
}
