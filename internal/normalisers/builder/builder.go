// Package builder maps the shared schema fragments into normalised
// addresses, registrations, entities and record headers.
//
// Union-shaped inputs (company or person, domestic or foreign address,
// registered or not) are resolved here once, with a fixed priority and a
// warning when both variants are present.
package builder

import (
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
)

// Builder assembles domain values from schema fragments.
// It is immutable and safe for concurrent use.
type Builder struct {
	values *value.Normalisers
}

// New creates a Builder over the given normalisers. A nil value selects
// normalisers built from the default vocabulary.
func New(values *value.Normalisers) *Builder {
	if values == nil {
		values = value.New(nil)
	}
	return &Builder{values: values}
}

// Values returns the value normalisers the builder uses.
func (b *Builder) Values() *value.Normalisers {
	return b.values
}
