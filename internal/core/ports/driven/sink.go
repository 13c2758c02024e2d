package driven

import (
	"context"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// RecordSink receives emitted records, one document at a time and in
// document order.
type RecordSink interface {
	// Name returns the sink name for logging.
	Name() string

	// Write takes one emitted record.
	Write(ctx context.Context, e *domain.Emission) error
}
