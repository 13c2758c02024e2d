// Package div normalises DIV bulletins: free-text miscellaneous notices.
package div

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// RootElement is the DIV document root.
const RootElement = "Divers_XML_Rediff"

// MediaType of notice bodies.
const MediaType = "text/plain"

type bulletin struct {
	Avis []avis `xml:"listeAvis>avis"`
}

type avis struct {
	schema.Header

	TitreAnnonce   string  `xml:"titreAnnonce"`
	ContenuAnnonce *string `xml:"contenuAnnonce"`
}

// Normaliser handles DIV documents.
type Normaliser struct {
	b *builder.Builder
}

// New creates a DIV normaliser.
func New(b *builder.Builder) *Normaliser {
	return &Normaliser{b: b}
}

// Format returns the format code.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatDIV
}

// RootElements returns the accepted root element names.
func (n *Normaliser) RootElements() []string {
	return []string{RootElement}
}

// Normalise produces one record per avis, carrying its title and body.
func (n *Normaliser) Normalise(ctx context.Context, doc *xmldoc.Document, tmpl *domain.Record) ([]*domain.Record, error) {
	var bul bulletin
	if err := doc.Decode(&bul); err != nil {
		return nil, err
	}

	records := make([]*domain.Record, 0, len(bul.Avis))
	for i := range bul.Avis {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a := &bul.Avis[i]

		rec, err := n.b.Record(tmpl, &a.Header)
		if err != nil {
			return nil, fmt.Errorf("avis %s: %w", a.Nojo, err)
		}
		if a.ContenuAnnonce == nil {
			return nil, fmt.Errorf("%w: avis %s without contenuAnnonce", domain.ErrInvalidInput, a.Nojo)
		}

		rec.Title = strings.TrimSpace(a.TitreAnnonce)
		rec.Body = &domain.Body{
			Value:     strings.TrimSpace(*a.ContenuAnnonce),
			MediaType: MediaType,
		}
		rec.About = &domain.Act{Type: domain.ActNotice}
		records = append(records, rec)
	}
	return records, nil
}
