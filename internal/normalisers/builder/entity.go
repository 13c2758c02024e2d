package builder

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
)

// Alternative name types.
const (
	NameTrading      = "trading"
	NameAbbreviation = "abbreviation"
	NameUnknown      = "unknown"
)

// Company builds a company. required is passed to Registration.
func (b *Builder) Company(pm *schema.PersonneMorale, required bool) (*domain.Company, error) {
	name := strings.TrimSpace(pm.Denomination)
	if name == "" {
		return nil, fmt.Errorf("%w: personneMorale without denomination", domain.ErrInvalidInput)
	}
	reg, err := b.Registration(pm.Registered, required)
	if err != nil {
		return nil, err
	}

	c := &domain.Company{
		Name:        name,
		CompanyType: strings.TrimSpace(pm.FormeJuridique),
	}
	c.Registration = reg
	c.Activity = strings.TrimSpace(pm.Activite)
	b.addresses(&c.Holder, pm.Addresses)

	if pm.NomCommercial != nil && strings.TrimSpace(*pm.NomCommercial) != "" {
		c.AlternativeNames = append(c.AlternativeNames, domain.AlternativeName{
			CompanyName: strings.TrimSpace(*pm.NomCommercial),
			Type:        NameTrading,
		})
	}
	if pm.Sigle != nil && strings.TrimSpace(*pm.Sigle) != "" {
		c.AlternativeNames = append(c.AlternativeNames, domain.AlternativeName{
			CompanyName: strings.TrimSpace(*pm.Sigle),
			Type:        NameAbbreviation,
		})
	}

	b.administration(c, pm.Administration)
	return c, nil
}

func (b *Builder) administration(c *domain.Company, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.values.IsOfficerChange(text) {
		logger.Debug("officers: left unparsed, describes a change: %q", text)
		c.Administration = text
		return
	}
	if officers, ok := b.values.Officers(text); ok {
		c.Officers = officers
		return
	}
	c.Administration = text
}

// Person builds a natural person. The usage name, when present, is the
// family name and the legal name becomes the birth name.
func (b *Builder) Person(pp *schema.PersonnePhysique, required bool) (*domain.Person, error) {
	nom := strings.TrimSpace(pp.Nom)
	usage := strings.TrimSpace(pp.NomUsage)
	if nom == "" && usage == "" {
		return nil, fmt.Errorf("%w: personnePhysique without nom", domain.ErrInvalidInput)
	}
	reg, err := b.Registration(pp.Registered, required)
	if err != nil {
		return nil, err
	}

	p := &domain.Person{
		Name: domain.PersonName{
			FamilyName: nom,
			GivenName:  strings.TrimSpace(pp.Prenom),
		},
		CustomaryName: usage,
		Nationality:   strings.TrimSpace(pp.Nationalite),
		Nature:        strings.TrimSpace(pp.Nature),
	}
	if usage != "" {
		p.Name.FamilyName = usage
		p.Name.BirthName = nom
	}
	p.Registration = reg
	p.Activity = strings.TrimSpace(pp.Activite)
	b.addresses(&p.Holder, pp.Addresses)

	// Persons tag pseudonyms "unknown" and trade names "trading".
	if pp.Pseudonyme != nil && strings.TrimSpace(*pp.Pseudonyme) != "" {
		p.AlternativeNames = append(p.AlternativeNames, domain.AlternativeName{
			Name: strings.TrimSpace(*pp.Pseudonyme),
			Type: NameUnknown,
		})
	}
	if pp.NomCommercial != nil && strings.TrimSpace(*pp.NomCommercial) != "" {
		p.AlternativeNames = append(p.AlternativeNames, domain.AlternativeName{
			Name: strings.TrimSpace(*pp.NomCommercial),
			Type: NameTrading,
		})
	}
	return p, nil
}

// Subject resolves the company/person union. The company wins when both
// are present. With neither the result is nil and a warning is logged.
func (b *Builder) Subject(pm *schema.PersonneMorale, pp *schema.PersonnePhysique, required bool) (*domain.Entity, error) {
	switch {
	case pm != nil:
		if pp != nil {
			logger.Warn("subject: expected one of personneMorale or personnePhysique, got both")
		}
		c, err := b.Company(pm, required)
		if err != nil {
			return nil, err
		}
		return &domain.Entity{Company: c}, nil
	case pp != nil:
		p, err := b.Person(pp, required)
		if err != nil {
			return nil, err
		}
		return &domain.Entity{Person: p}, nil
	default:
		logger.Warn("subject: expected one of personneMorale or personnePhysique, got none")
		return nil, nil
	}
}

// Subjects builds the entities of a list of personne elements. Addresses
// given beside the company or person become its registered address.
func (b *Builder) Subjects(personnes []schema.Personne, required bool) ([]domain.Entity, error) {
	var entities []domain.Entity
	for _, p := range personnes {
		e, err := b.Subject(p.PersonneMorale, p.PersonnePhysique, required)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}
		if h := e.Common(); h.RegisteredAddress == nil {
			h.RegisteredAddress = b.Address(p.Adresse)
		}
		entities = append(entities, *e)
	}
	return entities, nil
}

func (b *Builder) addresses(h *domain.Holder, a schema.Addresses) {
	registered := a.AdresseSiegeSocial
	if registered == nil {
		registered = a.Adresse
	} else if a.Adresse != nil {
		logger.Warn("address: expected one of adresse or adresseSiegeSocial, got both")
	}
	h.RegisteredAddress = b.Address(registered)
	h.HeadquartersAddress = b.Address(a.AdresseEtablissementPrincipal)
	h.MailingAddress = b.Address(a.AdresseDomicile)
}

// Capital returns the capital of the first personne that declares one.
func (b *Builder) Capital(personnes []schema.Personne) *domain.Capital {
	var capital *domain.Capital
	for _, p := range personnes {
		if p.Capital == nil {
			continue
		}
		if capital != nil {
			logger.Warn("capital: more than one personne declares a capital, keeping the first")
			break
		}
		capital = b.values.Capital(p.Capital.MontantCapital, p.Capital.Devise, p.Capital.CapitalVariable)
	}
	return capital
}
