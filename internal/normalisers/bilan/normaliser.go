// Package bilan normalises BILAN bulletins: filings of annual accounts.
package bilan

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

// RootElement is the BILAN document root.
const RootElement = "Bilan_XML_Rediff"

type bulletin struct {
	Avis []avis `xml:"listeAvis>avis"`
}

// avis describes the filing company inline rather than in a personne.
type avis struct {
	schema.Header
	schema.PersonneMorale

	Depot *depot `xml:"depot"`
}

type depot struct {
	DateCloture string `xml:"dateCloture"`
	TypeDepot   string `xml:"typeDepot"`
	Descriptif  string `xml:"descriptif"`
}

// Normaliser handles BILAN documents.
type Normaliser struct {
	b *builder.Builder
}

// New creates a BILAN normaliser.
func New(b *builder.Builder) *Normaliser {
	return &Normaliser{b: b}
}

// Format returns the format code.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatBILAN
}

// RootElements returns the accepted root element names.
func (n *Normaliser) RootElements() []string {
	return []string{RootElement}
}

// Normalise produces one filing record per avis.
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
		rec, err := n.avis(&bul.Avis[i], tmpl)
		if err != nil {
			return nil, fmt.Errorf("avis %s: %w", bul.Avis[i].Nojo, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (n *Normaliser) avis(a *avis, tmpl *domain.Record) (*domain.Record, error) {
	rec, err := n.b.Record(tmpl, &a.Header)
	if err != nil {
		return nil, err
	}

	company, err := n.b.Company(&a.PersonneMorale, true)
	if err != nil {
		return nil, err
	}
	rec.Subjects = []domain.Entity{{Company: company}}

	if a.Depot == nil {
		return nil, fmt.Errorf("%w: avis without depot", domain.ErrInvalidInput)
	}
	rec.About = &domain.Act{
		Type:        domain.ActFiling,
		ClosingDate: n.b.Date("dateCloture", a.Depot.DateCloture),
		FilingType:  strings.TrimSpace(a.Depot.TypeDepot),
	}
	rec.Description = strings.TrimSpace(a.Depot.Descriptif)
	return rec, nil
}
