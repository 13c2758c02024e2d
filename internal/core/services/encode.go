package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
)

// Encode returns the JSON line for a record, without a trailing newline.
// Empty nested values are pruned and object keys are sorted, so the same
// record always encodes to the same bytes.
func Encode(rec *domain.Record) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", rec.UID, err)
	}

	var tree any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", rec.UID, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value.Prune(tree)); err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", rec.UID, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
