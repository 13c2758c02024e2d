package domain

import "fmt"

// RunStats counts what a pipeline run did.
type RunStats struct {
	Lines     int `json:"lines"`
	Documents int `json:"documents"`
	Records   int `json:"records"`

	// Skipped counts documents passed over because their uid was
	// already in the ledger.
	Skipped int `json:"skipped"`

	// Failed counts documents dropped on a recoverable error or a
	// non-strict contract violation.
	Failed int `json:"failed"`
}

// Add accumulates other into s.
func (s *RunStats) Add(other RunStats) {
	s.Lines += other.Lines
	s.Documents += other.Documents
	s.Records += other.Records
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

func (s RunStats) String() string {
	return fmt.Sprintf("lines=%d documents=%d records=%d skipped=%d failed=%d",
		s.Lines, s.Documents, s.Records, s.Skipped, s.Failed)
}
