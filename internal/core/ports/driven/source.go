package driven

import (
	"context"
	"io"
)

// EnvelopeSource delivers files of newline-delimited envelopes.
type EnvelopeSource interface {
	// Each calls fn for every envelope file as it becomes available, in
	// arrival order, until ctx is done or fn returns an error.
	Each(ctx context.Context, fn func(name string, r io.Reader) error) error
}
