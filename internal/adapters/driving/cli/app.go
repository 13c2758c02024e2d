package cli

import (
	"fmt"
	"os"

	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/core/services"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/bilan"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/normalisers/div"
	"github.com/custodia-labs/bodacc/internal/normalisers/pcl"
	"github.com/custodia-labs/bodacc/internal/normalisers/rcsa"
	"github.com/custodia-labs/bodacc/internal/normalisers/rcsb"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
	"github.com/custodia-labs/bodacc/internal/vocab"
)

// loadValues builds the value normalisers, merging the vocabulary file at
// path over the embedded defaults when path is set.
func loadValues(path string) (*value.Normalisers, error) {
	v := vocab.Default()
	if path == "" {
		return value.New(v), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()

	ext, err := v.Extend(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("vocabulary path=%s", path)
	return value.New(ext), nil
}

// newDispatcher registers a handler for every supported format.
func newDispatcher(values *value.Normalisers) *services.Dispatcher {
	b := builder.New(values)
	normalisers := []driven.Normaliser{
		rcsa.New(b),
		pcl.New(b),
		div.New(b),
		rcsb.New(b),
		bilan.New(b),
	}
	return services.NewDispatcher(normalisers...)
}
