package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/core/ports/driving"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// envelopeNamespace scopes uids derived from payload content.
var envelopeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("http://www.bodacc.fr/"))

// errAlreadyProcessed marks a document skipped through the ledger.
var errAlreadyProcessed = errors.New("already processed")

// Pipeline drives envelopes through dispatch, dual parse and
// normalisation, and hands records to the sinks.
type Pipeline struct {
	registry driven.NormaliserRegistry
	values   *value.Normalisers
	sinks    []driven.RecordSink
	ledger   driven.EnvelopeLedger

	strict        bool
	skipProcessed bool
	runID         string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithSinks adds record sinks, written in the given order.
func WithSinks(sinks ...driven.RecordSink) PipelineOption {
	return func(p *Pipeline) {
		p.sinks = append(p.sinks, sinks...)
	}
}

// WithLedger records processed envelopes. With skip set, envelopes whose
// uid is already in the ledger are not processed again.
func WithLedger(ledger driven.EnvelopeLedger, skip bool) PipelineOption {
	return func(p *Pipeline) {
		p.ledger = ledger
		p.skipProcessed = skip
	}
}

// WithStrict makes contract violations abort the run instead of dropping
// the document.
func WithStrict(strict bool) PipelineOption {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

// WithRunID sets the run identifier stored with archived records.
func WithRunID(id string) PipelineOption {
	return func(p *Pipeline) {
		p.runID = id
	}
}

// NewPipeline creates a pipeline. A nil values selects the default
// vocabulary.
func NewPipeline(registry driven.NormaliserRegistry, values *value.Normalisers, opts ...PipelineOption) *Pipeline {
	if values == nil {
		values = value.New(nil)
	}
	p := &Pipeline{
		registry: registry,
		values:   values,
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunID returns the run identifier.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run reads newline-delimited envelopes from r. Each document's records
// are written to the sinks before the next line is read; a document that
// fails emits nothing.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (domain.RunStats, error) {
	var stats domain.RunStats
	br := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line, readErr := br.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("reading envelopes: %w", readErr)
		}
		if len(strings.TrimSpace(string(line))) > 0 {
			stats.Lines++
			if err := p.line(ctx, stats.Lines, line, &stats); err != nil {
				return stats, err
			}
		}
		if readErr != nil {
			return stats, nil
		}
	}
}

// line handles one envelope. It returns only run-fatal errors.
func (p *Pipeline) line(ctx context.Context, n int, line []byte, stats *domain.RunStats) error {
	var env domain.Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		logger.Warn("line %d: %v: decoding envelope: %v", n, domain.ErrInvalidInput, err)
		stats.Failed++
		return nil
	}

	uid, records, err := p.document(ctx, &env)
	switch {
	case err == nil:
	case errors.Is(err, errAlreadyProcessed):
		logger.Info("line %d: envelope %s already processed, skipped", n, uid)
		stats.Skipped++
		return nil
	case domain.IsFatal(err), ctx.Err() != nil:
		logger.Error("line %d: %v", n, err)
		return fmt.Errorf("line %d: %w", n, err)
	case errors.Is(err, domain.ErrContractViolation):
		logger.Error("line %d: %s %s: %v", n, env.Format, env.Identifier, err)
		if p.strict {
			return fmt.Errorf("line %d: %w", n, err)
		}
		stats.Failed++
		return nil
	default:
		logger.Warn("line %d: %s %s: %v", n, env.Format, env.Identifier, err)
		stats.Failed++
		return nil
	}

	if err := p.emit(ctx, uid, records); err != nil {
		return err
	}
	stats.Documents++
	stats.Records += len(records)

	if p.ledger != nil {
		err := p.ledger.MarkProcessed(ctx, domain.ProcessedEnvelope{
			UID:             uid,
			Format:          domain.Format(env.Format),
			IssueIdentifier: env.Identifier,
			RunID:           p.runID,
			Records:         len(records),
		})
		if err != nil {
			return fmt.Errorf("recording envelope %s: %w", uid, err)
		}
	}
	return nil
}

// emit encodes the whole document before any sink sees it, then hands it
// to each sink in turn. A sink that fails stops the later sinks from
// receiving any of the document.
func (p *Pipeline) emit(ctx context.Context, uid string, records []*domain.Record) error {
	emissions := make([]*domain.Emission, 0, len(records))
	for _, rec := range records {
		line, err := Encode(rec)
		if err != nil {
			return err
		}
		emissions = append(emissions, &domain.Emission{Record: rec, Line: line, EnvelopeUID: uid, RunID: p.runID})
	}

	for _, sink := range p.sinks {
		for _, e := range emissions {
			if err := sink.Write(ctx, e); err != nil {
				return fmt.Errorf("sink %s: %w", sink.Name(), err)
			}
		}
	}
	return nil
}

// Process normalises one envelope and returns its records.
func (p *Pipeline) Process(ctx context.Context, env *domain.Envelope) ([]*domain.Record, error) {
	_, records, err := p.document(ctx, env)
	return records, err
}

func (p *Pipeline) document(ctx context.Context, env *domain.Envelope) (string, []*domain.Record, error) {
	normaliser, err := p.registry.Resolve(env.Format)
	if err != nil {
		return "", nil, err
	}

	payload, err := xmldoc.Payload(env)
	if err != nil {
		return "", nil, err
	}
	uid := EnvelopeUID(env, payload)

	if p.skipProcessed && p.ledger != nil {
		done, err := p.ledger.IsProcessed(ctx, uid)
		if err != nil {
			return uid, nil, fmt.Errorf("checking envelope %s: %w", uid, err)
		}
		if done {
			return uid, nil, errAlreadyProcessed
		}
	}

	doc, err := xmldoc.Parse(payload)
	if err != nil {
		return uid, nil, err
	}
	if !slices.Contains(normaliser.RootElements(), doc.RootName()) {
		return uid, nil, fmt.Errorf("%w: %s document has root %q, expected one of %q",
			domain.ErrContractViolation, normaliser.Format(), doc.RootName(), normaliser.RootElements())
	}

	format := normaliser.Format()
	expected := format.ExpectedParution(env.Identifier)
	if got := doc.Root.ChildText("parution"); got != expected {
		return uid, nil, fmt.Errorf("%w: expected %s, got %q", domain.ErrIdentifierMismatch, expected, got)
	}

	published, err := p.values.PublicationDate(doc.Root.ChildText("dateParution"))
	if err != nil {
		return uid, nil, fmt.Errorf("dateParution: %w", err)
	}

	tmpl := domain.NewTemplate(env, format, published)
	records, err := normaliser.Normalise(ctx, doc, tmpl)
	if err != nil {
		return uid, nil, err
	}
	return uid, records, nil
}

// EnvelopeUID returns the envelope's uid, or one derived from the payload
// when the envelope carries none.
func EnvelopeUID(env *domain.Envelope, payload []byte) string {
	if env.UID != "" {
		return env.UID
	}
	return uuid.NewSHA1(envelopeNamespace, payload).String()
}
