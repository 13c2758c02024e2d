package domain

import (
	"encoding/json"
	"slices"
)

// EntityType tags the Entity union.
type EntityType string

const (
	// EntityCompany is a legal person (personne morale).
	EntityCompany EntityType = "company"

	// EntityPerson is a natural person (personne physique).
	EntityPerson EntityType = "person"
)

// Registration is a registry identifier. Exactly one of Number or
// NotRegistered is set.
type Registration struct {
	JurisdictionCode string `json:"jurisdiction_code,omitempty"`
	Number           string `json:"company_number,omitempty"`
	Registry         string `json:"registry,omitempty"`
	Clerk            string `json:"clerk,omitempty"`
	NotRegistered    bool   `json:"not_registered,omitempty"`
}

// Address is a normalised postal address, either domestic or foreign.
type Address struct {
	StreetAddress string `json:"street_address,omitempty"`
	Locality      string `json:"locality,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	CountryName   string `json:"country_name,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// AlternativeName is a secondary name with its source role.
type AlternativeName struct {
	CompanyName string `json:"company_name,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
}

// Officer is one (role, name) pair from an administration listing.
type Officer struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Holder carries the fields shared by companies and persons.
type Holder struct {
	Registration        *Registration     `json:"registration,omitempty"`
	AlternativeNames    []AlternativeName `json:"alternative_names,omitempty"`
	Activity            string            `json:"activity,omitempty"`
	RegisteredAddress   *Address          `json:"registered_address,omitempty"`
	HeadquartersAddress *Address          `json:"headquarters_address,omitempty"`
	MailingAddress      *Address          `json:"mailing_address,omitempty"`
}

// Company is a legal person.
type Company struct {
	Name        string `json:"name,omitempty"`
	CompanyType string `json:"company_type,omitempty"`

	// Officers is set when the administration text could be tokenised.
	Officers []Officer `json:"officers,omitempty"`

	// Administration keeps the raw text when it could not be tokenised.
	Administration string `json:"administration,omitempty"`

	Holder
}

// PersonName is a structured natural-person name.
type PersonName struct {
	FamilyName string `json:"family_name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	BirthName  string `json:"birth_name,omitempty"`
}

// Person is a natural person.
type Person struct {
	Name          PersonName `json:"name"`
	CustomaryName string     `json:"customary_name,omitempty"`
	Nationality   string     `json:"nationality,omitempty"`
	Nature        string     `json:"nature,omitempty"`

	Holder
}

// Entity is the tagged union {Company, Person}. Exactly one variant is set.
type Entity struct {
	Company *Company
	Person  *Person
}

// Type returns the variant tag.
func (e Entity) Type() EntityType {
	if e.Company != nil {
		return EntityCompany
	}
	return EntityPerson
}

// Common returns the shared part of whichever variant is set.
func (e Entity) Common() *Holder {
	switch {
	case e.Company != nil:
		return &e.Company.Holder
	case e.Person != nil:
		return &e.Person.Holder
	default:
		return nil
	}
}

// MarshalJSON flattens the set variant and adds the entity_type tag.
func (e Entity) MarshalJSON() ([]byte, error) {
	switch {
	case e.Company != nil:
		return json.Marshal(struct {
			Type EntityType `json:"entity_type"`
			*Company
		}{EntityCompany, e.Company})
	case e.Person != nil:
		return json.Marshal(struct {
			Type EntityType `json:"entity_type"`
			*Person
		}{EntityPerson, e.Person})
	default:
		return []byte("null"), nil
	}
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	var c Entity
	if e.Company != nil {
		co := *e.Company
		co.Officers = slices.Clone(e.Company.Officers)
		co.Holder = e.Company.Holder.clone()
		c.Company = &co
	}
	if e.Person != nil {
		p := *e.Person
		p.Holder = e.Person.Holder.clone()
		c.Person = &p
	}
	return c
}

func (h Holder) clone() Holder {
	c := h
	if h.Registration != nil {
		r := *h.Registration
		c.Registration = &r
	}
	c.AlternativeNames = slices.Clone(h.AlternativeNames)
	c.RegisteredAddress = h.RegisteredAddress.clone()
	c.HeadquartersAddress = h.HeadquartersAddress.clone()
	c.MailingAddress = h.MailingAddress.clone()
	return c
}

func (a *Address) clone() *Address {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneEntities(src []Entity) []Entity {
	if src == nil {
		return nil
	}
	dst := make([]Entity, len(src))
	for i, e := range src {
		dst[i] = e.Clone()
	}
	return dst
}
