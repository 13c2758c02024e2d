package builder

import (
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
)

// Country of every domestic address.
const (
	DomesticCountryName = "France"
	DomesticCountryCode = "FR"
)

// Address builds an address from either variant. The domestic variant is
// preferred when both are present. A nil input yields nil.
func (b *Builder) Address(a *schema.Adresse) *domain.Address {
	if a == nil {
		return nil
	}
	switch {
	case a.France != nil:
		if a.Etranger != nil {
			logger.Warn("address: expected one of france or etranger, got both")
		}
		return b.DomesticAddress(a.France)
	case a.Etranger != nil:
		return &domain.Address{
			StreetAddress: strings.TrimSpace(a.Etranger.Adresse),
			CountryName:   strings.TrimSpace(a.Etranger.Pays),
		}
	default:
		logger.Warn("address: expected one of france or etranger, got none")
		return nil
	}
}

// DomesticAddress builds a French address. The first street line joins
// the building identifier and the "number type name" group; the second
// joins the post-office box and the locality.
func (b *Builder) DomesticAddress(f *schema.France) *domain.Address {
	if f == nil {
		return nil
	}

	street := value.Join(", ",
		f.ComplGeographique,
		value.Join(" ", f.NumeroVoie, f.TypeVoie, f.NomVoie),
	)
	delivery := value.Join(", ", f.BP, f.Localite)

	addr := &domain.Address{
		StreetAddress: value.Join("\n", street, delivery),
		Locality:      strings.TrimSpace(f.Ville),
		PostalCode:    strings.TrimSpace(f.CodePostal),
		CountryName:   DomesticCountryName,
		CountryCode:   DomesticCountryCode,
	}
	if addr.Locality == "" {
		logger.Warn("address: missing ville")
	}
	if addr.PostalCode == "" {
		logger.Warn("address: missing codePostal")
	}
	return addr
}
