// Package rcsb normalises RCS-B bulletins: modifications to registered
// entities and strikings-off from the trade registry.
package rcsb

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/builder"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Root element names. Both spellings occur across schema versions.
const (
	RootElement       = "RCS-B_REDIFF"
	LegacyRootElement = "RCS_B_REDIFF"
)

type bulletin struct {
	Avis []avis `xml:"listeAvis>avis"`
}

type avis struct {
	schema.Header

	Personnes              []schema.Personne       `xml:"personnes>personne"`
	ModificationsGenerales *modificationsGenerales `xml:"modificationsGenerales"`
	RadiationAuRCS         *radiationAuRCS         `xml:"radiationAuRCS"`
}

type modificationsGenerales struct {
	Descriptif               string `xml:"descriptif"`
	DateCommencementActivite string `xml:"dateCommencementActivite"`
	DateEffet                string `xml:"dateEffet"`
}

type radiationAuRCS struct {
	RadiationPP *struct {
		DateCessationActivitePP string `xml:"dateCessationActivitePP"`
	} `xml:"radiationPP"`
	RadiationPM *string `xml:"radiationPM"`
	Commentaire string  `xml:"commentaire"`
}

// Normaliser handles RCS-B documents.
type Normaliser struct {
	b *builder.Builder
}

// New creates an RCS-B normaliser.
func New(b *builder.Builder) *Normaliser {
	return &Normaliser{b: b}
}

// Format returns the format code.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatRCSB
}

// RootElements returns the accepted root element names.
func (n *Normaliser) RootElements() []string {
	return []string{RootElement, LegacyRootElement}
}

// Normalise produces one record per avis. Every subject must carry a
// registration marker.
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
	if rec.Subjects, err = n.b.Subjects(a.Personnes, true); err != nil {
		return nil, err
	}

	var act *domain.Act
	switch {
	case a.ModificationsGenerales != nil:
		if a.RadiationAuRCS != nil {
			logger.Warn("avis %s: expected one of modificationsGenerales or radiationAuRCS, got both", a.Nojo)
		}
		m := a.ModificationsGenerales
		act = &domain.Act{
			Type:          domain.ActGeneralModification,
			StartDate:     n.b.Date("dateCommencementActivite", m.DateCommencementActivite),
			EffectiveDate: n.b.Date("dateEffet", m.DateEffet, value.LayoutLong, value.LayoutISO),
		}
		rec.Description = strings.TrimSpace(m.Descriptif)
	case a.RadiationAuRCS != nil:
		r := a.RadiationAuRCS
		act = &domain.Act{
			Type:    domain.ActStruckOff,
			Comment: strings.TrimSpace(r.Commentaire),
		}
		if r.RadiationPP != nil {
			act.DateCeased = n.b.Date("dateCessationActivitePP", r.RadiationPP.DateCessationActivitePP, value.LayoutLong, value.LayoutISO)
		}
	default:
		return nil, fmt.Errorf("%w: expected one of modificationsGenerales or radiationAuRCS, got none", domain.ErrInvalidInput)
	}

	act.Capital = n.b.Capital(a.Personnes)
	rec.About = act
	return rec, nil
}
