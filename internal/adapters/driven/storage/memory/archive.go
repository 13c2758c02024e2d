package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
)

// Ensure Archive implements the interfaces.
var (
	_ driven.RecordArchive  = (*Archive)(nil)
	_ driven.EnvelopeLedger = (*Archive)(nil)
	_ driven.RecordSink     = (*Archive)(nil)
)

// Archive is an in-memory record archive and envelope ledger. It backs
// one-off runs without --archive and tests.
type Archive struct {
	mu        sync.RWMutex
	records   map[string]domain.ArchivedRecord
	envelopes map[string]domain.ProcessedEnvelope
}

// NewArchive creates an empty in-memory archive.
func NewArchive() *Archive {
	return &Archive{
		records:   make(map[string]domain.ArchivedRecord),
		envelopes: make(map[string]domain.ProcessedEnvelope),
	}
}

// Name returns the sink name.
func (a *Archive) Name() string {
	return "memory"
}

// Write archives an emitted record.
func (a *Archive) Write(ctx context.Context, e *domain.Emission) error {
	return a.SaveRecord(ctx, e.Archived())
}

// SaveRecord stores or replaces a record.
func (a *Archive) SaveRecord(_ context.Context, rec domain.ArchivedRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[rec.UID] = rec
	return nil
}

// GetRecord retrieves a record by uid.
func (a *Archive) GetRecord(_ context.Context, uid string) (*domain.ArchivedRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, ok := a.records[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// ListRecords returns the records of an issue ordered by identifier.
func (a *Archive) ListRecords(_ context.Context, issueIdentifier string) ([]domain.ArchivedRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var result []domain.ArchivedRecord
	for _, rec := range a.records {
		if rec.IssueIdentifier == issueIdentifier {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Identifier != result[j].Identifier {
			return result[i].Identifier < result[j].Identifier
		}
		return result[i].UID < result[j].UID
	})
	return result, nil
}

// MarkProcessed records a successfully normalised envelope.
func (a *Archive) MarkProcessed(_ context.Context, env domain.ProcessedEnvelope) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.envelopes[env.UID] = env
	return nil
}

// IsProcessed reports whether an envelope uid is in the ledger.
func (a *Archive) IsProcessed(_ context.Context, uid string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.envelopes[uid]
	return ok, nil
}
