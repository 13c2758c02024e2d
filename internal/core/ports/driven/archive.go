package driven

import (
	"context"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// EnvelopeLedger remembers which envelopes were normalised successfully.
type EnvelopeLedger interface {
	// MarkProcessed records a successful document.
	MarkProcessed(ctx context.Context, env domain.ProcessedEnvelope) error

	// IsProcessed reports whether an envelope uid is in the ledger.
	IsProcessed(ctx context.Context, uid string) (bool, error)
}

// RecordArchive keeps emitted records.
type RecordArchive interface {
	// SaveRecord stores or replaces a record, keyed by its uid.
	SaveRecord(ctx context.Context, rec domain.ArchivedRecord) error

	// ListRecords returns the records of an issue ordered by identifier.
	ListRecords(ctx context.Context, issueIdentifier string) ([]domain.ArchivedRecord, error)

	// GetRecord retrieves a record by uid.
	GetRecord(ctx context.Context, uid string) (*domain.ArchivedRecord, error)
}
