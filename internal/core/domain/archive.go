package domain

// ArchivedRecord is an emitted record as kept by a record archive.
type ArchivedRecord struct {
	UID             string `json:"uid"`
	IssueIdentifier string `json:"issue_identifier"`
	Identifier      int    `json:"identifier"`
	Format          Format `json:"format"`
	EnvelopeUID     string `json:"envelope_uid"`
	RunID           string `json:"run_id"`

	// Line is the record exactly as it was emitted.
	Line string `json:"line"`
}

// ProcessedEnvelope is the ledger entry for a document that was
// normalised successfully.
type ProcessedEnvelope struct {
	UID             string `json:"uid"`
	Format          Format `json:"format"`
	IssueIdentifier string `json:"issue_identifier"`
	RunID           string `json:"run_id"`
	Records         int    `json:"records"`
}

// Emission is one record as handed to record sinks.
type Emission struct {
	Record *Record

	// Line is the encoded record, without a trailing newline.
	Line []byte

	EnvelopeUID string
	RunID       string
}

// Archived returns the archive entry for the emission.
func (e *Emission) Archived() ArchivedRecord {
	return ArchivedRecord{
		UID:             e.Record.UID,
		IssueIdentifier: e.Record.Issue.Identifier,
		Identifier:      e.Record.Identifier,
		Format:          e.Record.OtherAttributes.Format,
		EnvelopeUID:     e.EnvelopeUID,
		RunID:           e.RunID,
		Line:            string(e.Line),
	}
}
