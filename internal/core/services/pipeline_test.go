package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/normalisers/div"
)

// --- Test doubles ---

// collectSink implements driven.RecordSink for testing.
type collectSink struct {
	lines []string
	err   error

	// failAfter, when positive, fails every write after that many lines.
	failAfter int
}

func (s *collectSink) Name() string { return "collect" }

func (s *collectSink) Write(_ context.Context, e *domain.Emission) error {
	if s.err != nil {
		return s.err
	}
	if s.failAfter > 0 && len(s.lines) >= s.failAfter {
		return errors.New("disk full")
	}
	s.lines = append(s.lines, string(e.Line))
	return nil
}

// mapLedger implements driven.EnvelopeLedger for testing.
type mapLedger struct {
	done map[string]domain.ProcessedEnvelope
}

func newMapLedger() *mapLedger {
	return &mapLedger{done: make(map[string]domain.ProcessedEnvelope)}
}

func (l *mapLedger) MarkProcessed(_ context.Context, env domain.ProcessedEnvelope) error {
	l.done[env.UID] = env
	return nil
}

func (l *mapLedger) IsProcessed(_ context.Context, uid string) (bool, error) {
	_, ok := l.done[uid]
	return ok, nil
}

const divDocument = `<?xml version="1.0" encoding="UTF-8"?>
<Divers_XML_Rediff>
  <parution>20150003</parution>
  <dateParution>02/01/2015</dateParution>
  <listeAvis>
    <avis>
      <nojo>D201500030001</nojo>
      <typeAnnonce><annonce/></typeAnnonce>
      <numeroAnnonce>1</numeroAnnonce>
      <titreAnnonce>Avis</titreAnnonce>
      <contenuAnnonce>Premier avis</contenuAnnonce>
    </avis>
    <avis>
      <nojo>D201500030002</nojo>
      <typeAnnonce><annonce/></typeAnnonce>
      <numeroAnnonce>2</numeroAnnonce>
      <titreAnnonce>Avis</titreAnnonce>
      <contenuAnnonce>Second avis</contenuAnnonce>
    </avis>
  </listeAvis>
</Divers_XML_Rediff>`

func envelopeLine(t *testing.T, env domain.Envelope) string {
	t.Helper()
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return string(data) + "\n"
}

func divEnvelope(identifier, document string) domain.Envelope {
	return domain.Envelope{
		Format:      string(domain.FormatDIV),
		Identifier:  identifier,
		EditionID:   "A",
		SourceURL:   "https://echanges.dila.gouv.fr/OPENDATA/BODACC/2015/DIV20150003.taz",
		RetrievedAt: "2015-01-03T10:00:00Z",
		Document:    document,
	}
}

func newTestPipeline(opts ...PipelineOption) *Pipeline {
	d := NewDispatcher(div.New(builder.New(nil)))
	return NewPipeline(d, nil, append([]PipelineOption{WithRunID("run-1")}, opts...)...)
}

func TestPipeline_Run(t *testing.T) {
	sink := &collectSink{}
	p := newTestPipeline(WithSinks(sink))

	input := envelopeLine(t, divEnvelope("201501020003", divDocument))
	stats, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, domain.RunStats{Lines: 1, Documents: 1, Records: 2}, stats)
	require.Len(t, sink.lines, 2)
	assert.Contains(t, sink.lines[0], `"uid":"D201500030001"`)
	assert.Contains(t, sink.lines[0], `"date_published":"2015-01-02"`)
	assert.Contains(t, sink.lines[1], `"uid":"D201500030002"`)
	assert.NotContains(t, sink.lines[0], "\n")
}

func TestPipeline_Run_ReprocessingIsByteIdentical(t *testing.T) {
	input := envelopeLine(t, divEnvelope("201501020003", divDocument))

	first := &collectSink{}
	_, err := newTestPipeline(WithSinks(first)).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	second := &collectSink{}
	_, err = newTestPipeline(WithSinks(second)).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, first.lines, second.lines)
}

func TestPipeline_Run_IdentifierMismatchIsFatal(t *testing.T) {
	sink := &collectSink{}
	p := newTestPipeline(WithSinks(sink))

	input := envelopeLine(t, divEnvelope("201501020004", divDocument))
	_, err := p.Run(context.Background(), strings.NewReader(input))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIdentifierMismatch)
	assert.Empty(t, sink.lines)
}

func TestPipeline_Run_UnknownFormatIsFatal(t *testing.T) {
	sink := &collectSink{}
	p := newTestPipeline(WithSinks(sink))

	env := divEnvelope("201501020003", divDocument)
	env.Format = "RCS-C"
	input := envelopeLine(t, divEnvelope("201501020003", divDocument)) + envelopeLine(t, env)

	stats, err := p.Run(context.Background(), strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	assert.Equal(t, 1, stats.Documents)
	assert.Len(t, sink.lines, 2, "records of earlier documents stay emitted")
}

func TestPipeline_Run_InvalidDocumentIsSkipped(t *testing.T) {
	sink := &collectSink{}
	p := newTestPipeline(WithSinks(sink))

	broken := strings.Replace(divDocument, "<contenuAnnonce>Second avis</contenuAnnonce>", "", 1)
	input := "not json\n\n" +
		envelopeLine(t, divEnvelope("201501020003", broken)) +
		envelopeLine(t, divEnvelope("201501020003", divDocument))

	stats, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, domain.RunStats{Lines: 3, Documents: 1, Records: 2, Failed: 2}, stats)
	assert.Len(t, sink.lines, 2, "a failed document emits nothing")
}

func TestPipeline_Run_RootMismatch(t *testing.T) {
	doc := strings.ReplaceAll(divDocument, "Divers_XML_Rediff", "Bilan_XML_Rediff")
	input := envelopeLine(t, divEnvelope("201501020003", doc))

	stats, err := newTestPipeline().Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)

	_, err = newTestPipeline(WithStrict(true)).Run(context.Background(), strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrContractViolation)
}

func TestPipeline_Run_LastLineWithoutNewline(t *testing.T) {
	input := strings.TrimSuffix(envelopeLine(t, divEnvelope("201501020003", divDocument)), "\n")

	stats, err := newTestPipeline().Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
}

func TestPipeline_Run_SinkError(t *testing.T) {
	p := newTestPipeline(WithSinks(&collectSink{err: errors.New("disk full")}))

	input := envelopeLine(t, divEnvelope("201501020003", divDocument))
	_, err := p.Run(context.Background(), strings.NewReader(input))
	assert.ErrorContains(t, err, "disk full")
}

func TestPipeline_Run_SinkFailureStopsLaterSinks(t *testing.T) {
	archive := &collectSink{failAfter: 1}
	out := &collectSink{}
	ledger := newMapLedger()
	p := newTestPipeline(WithSinks(archive, out), WithLedger(ledger, false))

	_, err := p.Run(context.Background(), strings.NewReader(envelopeLine(t, divEnvelope("201501020003", divDocument))))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink collect")

	assert.Len(t, archive.lines, 1)
	assert.Empty(t, out.lines)
	assert.Empty(t, ledger.done)
}

func TestPipeline_Run_SkipProcessed(t *testing.T) {
	ledger := newMapLedger()
	input := envelopeLine(t, divEnvelope("201501020003", divDocument))

	stats, err := newTestPipeline(WithLedger(ledger, true)).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	require.Len(t, ledger.done, 1)
	for _, entry := range ledger.done {
		assert.Equal(t, 2, entry.Records)
		assert.Equal(t, "run-1", entry.RunID)
		assert.Equal(t, domain.FormatDIV, entry.Format)
	}

	sink := &collectSink{}
	stats, err = newTestPipeline(WithLedger(ledger, true), WithSinks(sink)).
		Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, domain.RunStats{Lines: 1, Skipped: 1}, stats)
	assert.Empty(t, sink.lines)

	stats, err = newTestPipeline(WithLedger(ledger, false)).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents, "ledger without skip only records")
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline().Run(ctx, strings.NewReader(envelopeLine(t, divEnvelope("201501020003", divDocument))))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Process_Base64Latin1(t *testing.T) {
	doc := strings.Replace(divDocument, `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	doc = strings.Replace(doc, "Premier avis", "Dépôt", 1)
	latin1 := bytes.ReplaceAll([]byte(doc), []byte("é"), []byte{0xe9})
	latin1 = bytes.ReplaceAll(latin1, []byte("ô"), []byte{0xf4})

	env := divEnvelope("201501020003", "")
	env.DocumentBase64 = base64.StdEncoding.EncodeToString(latin1)

	records, err := newTestPipeline().Process(context.Background(), &env)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dépôt", records[0].Body.Value)
}

func TestEnvelopeUID(t *testing.T) {
	env := &domain.Envelope{}
	a := EnvelopeUID(env, []byte("<a/>"))
	b := EnvelopeUID(env, []byte("<a/>"))
	c := EnvelopeUID(env, []byte("<b/>"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "given", EnvelopeUID(&domain.Envelope{UID: "given"}, []byte("<a/>")))
}
