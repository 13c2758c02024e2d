// Package jsonl writes emitted records as newline-delimited JSON.
package jsonl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.RecordSink = (*Sink)(nil)

// Sink writes one record per line. Lines are flushed after every record
// so a consumer reading a pipe sees each record as soon as it is emitted.
type Sink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// New creates a sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Name returns the sink name.
func (s *Sink) Name() string {
	return "jsonl"
}

// Write emits the record line.
func (s *Sink) Write(_ context.Context, e *domain.Emission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(e.Line); err != nil {
		return fmt.Errorf("writing record %s: %w", e.Record.UID, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing record %s: %w", e.Record.UID, err)
	}
	return s.w.Flush()
}
