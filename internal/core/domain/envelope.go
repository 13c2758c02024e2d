package domain

// Envelope is one line of input produced by the retrieval collaborator.
// It carries one decompressed bulletin document and its issue metadata.
type Envelope struct {
	// Format is the resolved schema family code.
	Format string `json:"format"`

	// Identifier is the issue number derived from the archive filename.
	Identifier string `json:"identifier"`

	// EditionID names the sub-bulletin (A, B or C).
	EditionID string `json:"edition_id"`

	// URL is the issue location, when known.
	URL string `json:"url,omitempty"`

	// SourceURL is where the archive was retrieved from.
	SourceURL string `json:"source_url"`

	// RetrievedAt is the ISO-8601 UTC retrieval timestamp.
	RetrievedAt string `json:"retrieved_at"`

	// UID identifies the payload for idempotent reprocessing.
	// When empty it is derived from the payload content.
	UID string `json:"uid,omitempty"`

	// Document is the XML text, already re-encoded to UTF-8.
	Document string `json:"document,omitempty"`

	// DocumentBase64 is the XML as fetched, before any re-encoding.
	DocumentBase64 string `json:"document_base64,omitempty"`
}

// Issue returns the issue metadata carried by the envelope.
func (e *Envelope) Issue() Issue {
	return Issue{
		Publication: DefaultPublication(),
		Identifier:  e.Identifier,
		EditionID:   e.EditionID,
		URL:         e.URL,
	}
}
