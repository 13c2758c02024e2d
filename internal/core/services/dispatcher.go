package services

import (
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/core/ports/driving"
)

// Ensure Dispatcher implements the interfaces.
var (
	_ driven.NormaliserRegistry = (*Dispatcher)(nil)
	_ driving.FormatCatalogue   = (*Dispatcher)(nil)
)

// Dispatcher maps format codes to their normalisers.
type Dispatcher struct {
	mu          sync.RWMutex
	normalisers map[domain.Format]driven.Normaliser
}

// NewDispatcher creates a dispatcher with the given normalisers registered.
func NewDispatcher(normalisers ...driven.Normaliser) *Dispatcher {
	d := &Dispatcher{normalisers: make(map[domain.Format]driven.Normaliser, len(normalisers))}
	for _, n := range normalisers {
		d.Register(n)
	}
	return d
}

// Register adds a normaliser, replacing any for the same format.
func (d *Dispatcher) Register(normaliser driven.Normaliser) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.normalisers[normaliser.Format()] = normaliser
}

// Resolve returns the normaliser for a format code.
func (d *Dispatcher) Resolve(code string) (driven.Normaliser, error) {
	format, err := domain.ParseFormat(code)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.normalisers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser registered for %s", domain.ErrUnknownFormat, format)
	}
	return n, nil
}

// Formats returns the registered formats in bulletin order.
func (d *Dispatcher) Formats() []domain.Format {
	d.mu.RLock()
	defer d.mu.RUnlock()

	formats := make([]domain.Format, 0, len(d.normalisers))
	for _, f := range domain.Formats {
		if _, ok := d.normalisers[f]; ok {
			formats = append(formats, f)
		}
	}
	return formats
}

// Catalogue returns every registered format with its root elements.
func (d *Dispatcher) Catalogue() []driving.FormatInfo {
	formats := d.Formats()

	d.mu.RLock()
	defer d.mu.RUnlock()
	infos := make([]driving.FormatInfo, 0, len(formats))
	for _, f := range formats {
		infos = append(infos, driving.FormatInfo{
			Format:       f,
			RootElements: slices.Clone(d.normalisers[f].RootElements()),
		})
	}
	return infos
}
