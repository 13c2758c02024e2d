// Package rcsa normalises RCS-A bulletins: creations, registrations and
// sales of businesses at the trade registry.
package rcsa

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

// RootElement is the RCS-A document root.
const RootElement = "RCS_A_IMMAT"

type bulletin struct {
	Avis []avis `xml:"listeAvis>avis"`
}

type avis struct {
	schema.Header

	Personnes               []schema.Personne         `xml:"personnes>personne"`
	Etablissements          []etablissement           `xml:"etablissement"`
	PrecedentProprietairePM []schema.PersonneMorale   `xml:"precedentProprietairePM"`
	PrecedentProprietairePP []schema.PersonnePhysique `xml:"precedentProprietairePP"`
	PrecedentExploitantPM   []schema.PersonneMorale   `xml:"precedentExploitantPM"`
	PrecedentExploitantPP   []schema.PersonnePhysique `xml:"precedentExploitantPP"`
	Acte                    *acte                     `xml:"acte"`
}

type etablissement struct {
	OrigineFonds         string               `xml:"origineFonds"`
	QualiteEtablissement string               `xml:"qualiteEtablissement"`
	Activite             string               `xml:"activite"`
	Enseigne             string               `xml:"enseigne"`
	Adresse              *schema.LooseAdresse `xml:"adresse"`
}

type acte struct {
	Creation        *acteDetail `xml:"creation"`
	Immatriculation *acteDetail `xml:"immatriculation"`
	Vente           *acteDetail `xml:"vente"`
}

type acteDetail struct {
	CategorieCreation        string   `xml:"categorieCreation"`
	DateImmatriculation      string   `xml:"dateImmatriculation"`
	DateCommencementActivite string   `xml:"dateCommencementActivite"`
	DateEffet                string   `xml:"dateEffet"`
	Descriptif               string   `xml:"descriptif"`
	Journal                  *journal `xml:"journal"`
	Opposition               *string  `xml:"opposition"`
	DeclarationCreance       *string  `xml:"declarationCreance"`
}

type journal struct {
	Titre string `xml:"titre"`
	Date  string `xml:"date"`
}

func (d *acteDetail) empty() bool {
	return *d == acteDetail{}
}

// Normaliser handles RCS-A documents.
type Normaliser struct {
	b *builder.Builder
}

// New creates an RCS-A normaliser.
func New(b *builder.Builder) *Normaliser {
	return &Normaliser{b: b}
}

// Format returns the format code.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatRCSA
}

// RootElements returns the accepted root element names.
func (n *Normaliser) RootElements() []string {
	return []string{RootElement}
}

// Normalise produces one record per avis.
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

	rec.Subjects, err = n.b.Subjects(a.Personnes, false)
	if err != nil {
		return nil, err
	}

	act, detail, err := n.act(a.Acte)
	if err != nil {
		return nil, err
	}
	act.Capital = n.b.Capital(a.Personnes)
	act.PreviousPublication = n.b.PreviousPublication(a.ParutionAvisPrecedent)
	act.Locations = n.locations(a.Etablissements)

	if act.PreviousOwners, err = n.entities(a.PrecedentProprietairePM, a.PrecedentProprietairePP); err != nil {
		return nil, err
	}
	if act.PreviousOperators, err = n.entities(a.PrecedentExploitantPM, a.PrecedentExploitantPP); err != nil {
		return nil, err
	}

	if act.Type == domain.ActCreation {
		rec.Classification = n.classification(detail.CategorieCreation)
	}
	rec.Description = strings.TrimSpace(detail.Descriptif)
	rec.About = act
	return rec, nil
}

func (n *Normaliser) act(a *acte) (*domain.Act, *acteDetail, error) {
	if a == nil {
		return nil, nil, fmt.Errorf("%w: avis without acte", domain.ErrInvalidInput)
	}

	var (
		element string
		detail  *acteDetail
		found   int
	)
	for _, c := range []struct {
		name   string
		detail *acteDetail
	}{
		{"creation", a.Creation},
		{"immatriculation", a.Immatriculation},
		{"vente", a.Vente},
	} {
		if c.detail == nil {
			continue
		}
		if found == 0 {
			element, detail = c.name, c.detail
		}
		found++
	}
	switch {
	case found == 0:
		return nil, nil, fmt.Errorf("%w: acte without creation, immatriculation or vente", domain.ErrInvalidInput)
	case found > 1:
		logger.Warn("acte: expected one of creation, immatriculation or vente, got %d", found)
	}

	actType, ok := n.b.Values().Vocabulary().ActType(element)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no act type for %s", domain.ErrContractViolation, element)
	}

	act := &domain.Act{
		Type:           domain.ActType(actType),
		DateRegistered: n.b.Date("dateImmatriculation", detail.DateImmatriculation),
		StartDate:      n.b.Date("dateCommencementActivite", detail.DateCommencementActivite),
	}

	if act.Type == domain.ActRegistration || act.Type == domain.ActSale {
		act.EffectiveDate = n.b.Date("dateEffet", detail.DateEffet, value.LayoutLong, value.LayoutISO)
	}

	if act.Type == domain.ActSale {
		if j := detail.Journal; j != nil {
			act.Journal = &domain.Journal{
				Title: strings.TrimSpace(j.Titre),
				Date:  n.b.Date("journal.date", j.Date),
			}
		}
		switch {
		case detail.Opposition != nil || detail.DeclarationCreance != nil:
			act.Opposition = trim(detail.Opposition)
			act.DebtDeclaration = trim(detail.DeclarationCreance)
		case !detail.empty():
			logger.Warn("vente: expected one of opposition or declarationCreance, got none")
		}
	}
	return act, detail, nil
}

func (n *Normaliser) classification(category string) []domain.Classification {
	category = strings.TrimSpace(category)
	if category == "" {
		logger.Warn("creation: missing categorieCreation")
		return nil
	}
	if !n.b.Values().Vocabulary().IsCategory(category) {
		logger.Warn("creation: unrecognised category %q", category)
	}
	return []domain.Classification{{Scheme: domain.ClassificationScheme, Value: category}}
}

func (n *Normaliser) locations(etablissements []etablissement) []domain.Location {
	var locations []domain.Location
	for _, e := range etablissements {
		loc := domain.Location{
			Name:         strings.TrimSpace(e.Enseigne),
			Activity:     strings.TrimSpace(e.Activite),
			Address:      n.b.Address(e.Adresse.Resolve()),
			Origin:       strings.TrimSpace(e.OrigineFonds),
			PropertyType: n.b.Values().PropertyType(e.QualiteEtablissement),
		}
		if loc.Origin != "" {
			n.b.Values().Origin(loc.Origin)
		}
		locations = append(locations, loc)
	}
	return locations
}

// entities builds previous owners or operators, companies first.
func (n *Normaliser) entities(pms []schema.PersonneMorale, pps []schema.PersonnePhysique) ([]domain.Entity, error) {
	var out []domain.Entity
	for i := range pms {
		c, err := n.b.Company(&pms[i], false)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Entity{Company: c})
	}
	for i := range pps {
		p, err := n.b.Person(&pps[i], false)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Entity{Person: p})
	}
	return out, nil
}

func trim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
