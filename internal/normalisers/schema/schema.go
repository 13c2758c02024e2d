// Package schema holds the encoding/xml fragments shared by the BODACC
// schema families: persons, addresses, registration numbers, capital and
// the announcement header.
//
// Optional elements whose presence matters are pointers; a nil pointer
// means the element is absent, a pointer to "" means it is present and
// empty.
package schema

import "encoding/xml"

// Header is the part of an announcement common to every format.
type Header struct {
	Nojo                  string                 `xml:"nojo"`
	TypeAnnonce           Choice                 `xml:"typeAnnonce"`
	NumeroAnnonce         string                 `xml:"numeroAnnonce"`
	NumeroDepartement     string                 `xml:"numeroDepartement"`
	Tribunal              string                 `xml:"tribunal"`
	ParutionAvisPrecedent *ParutionAvisPrecedent `xml:"parutionAvisPrecedent"`
}

// ParutionAvisPrecedent references an earlier announcement.
type ParutionAvisPrecedent struct {
	NomPublication string `xml:"nomPublication"`
	NumeroParution string `xml:"numeroParution"`
	DateParution   string `xml:"dateParution"`
	NumeroAnnonce  string `xml:"numeroAnnonce"`
}

// Choice decodes an element whose value is the name of its first child,
// as in <typeAnnonce><rectificatif/></typeAnnonce>.
type Choice string

// UnmarshalXML implements xml.Unmarshaler.
func (c *Choice) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var name string
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if name == "" {
				name = t.Name.Local
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			*c = Choice(name)
			return nil
		}
	}
}

// NumeroImmatriculation is a trade registry number. Older schema versions
// name the number element numeroIdentificationRCS.
type NumeroImmatriculation struct {
	NumeroIdentification    string `xml:"numeroIdentification"`
	NumeroIdentificationRCS string `xml:"numeroIdentificationRCS"`
	CodeRCS                 string `xml:"codeRCS"`
	NomGreffeImmat          string `xml:"nomGreffeImmat"`
}

// Number returns whichever number element is set.
func (n *NumeroImmatriculation) Number() string {
	if n.NumeroIdentification != "" {
		return n.NumeroIdentification
	}
	return n.NumeroIdentificationRCS
}

// Registered holds the two mutually exclusive registration markers.
type Registered struct {
	NumeroImmatriculation *NumeroImmatriculation `xml:"numeroImmatriculation"`
	NonInscrit            *string                `xml:"nonInscrit"`
}

// France is a structured domestic address.
type France struct {
	NumeroVoie        string `xml:"numeroVoie"`
	TypeVoie          string `xml:"typeVoie"`
	NomVoie           string `xml:"nomVoie"`
	ComplGeographique string `xml:"complGeographique"`
	BP                string `xml:"BP"`
	Localite          string `xml:"localite"`
	CodePostal        string `xml:"codePostal"`
	Ville             string `xml:"ville"`
}

// Etranger is a freeform foreign address.
type Etranger struct {
	Adresse string `xml:"adresse"`
	Pays    string `xml:"pays"`
}

// Adresse offers a domestic or a foreign variant.
type Adresse struct {
	France   *France   `xml:"france"`
	Etranger *Etranger `xml:"etranger"`
}

// Addresses holds the address roles a person or company may carry.
type Addresses struct {
	Adresse                       *Adresse `xml:"adresse"`
	AdresseSiegeSocial            *Adresse `xml:"adresseSiegeSocial"`
	AdresseEtablissementPrincipal *Adresse `xml:"adresseEtablissementPrincipal"`
	AdresseDomicile               *Adresse `xml:"adresseDomicile"`
}

// PersonneMorale is a company.
type PersonneMorale struct {
	Registered
	Addresses

	Denomination   string  `xml:"denomination"`
	FormeJuridique string  `xml:"formeJuridique"`
	Administration string  `xml:"administration"`
	NomCommercial  *string `xml:"nomCommercial"`
	Sigle          *string `xml:"sigle"`
	Activite       string  `xml:"activite"`
}

// PersonnePhysique is a natural person.
type PersonnePhysique struct {
	Registered
	Addresses

	Nom           string  `xml:"nom"`
	Prenom        string  `xml:"prenom"`
	NomUsage      string  `xml:"nomUsage"`
	Pseudonyme    *string `xml:"pseudonyme"`
	NomCommercial *string `xml:"nomCommercial"`
	Nationalite   string  `xml:"nationalite"`
	Nature        string  `xml:"nature"`
	Activite      string  `xml:"activite"`
}

// Capital is a company's capital, fixed or variable.
type Capital struct {
	MontantCapital  *string `xml:"montantCapital"`
	Devise          string  `xml:"devise"`
	CapitalVariable *string `xml:"capitalVariable"`
}

// Personne is one subject of an announcement.
type Personne struct {
	PersonneMorale   *PersonneMorale   `xml:"personneMorale"`
	PersonnePhysique *PersonnePhysique `xml:"personnePhysique"`
	Capital          *Capital          `xml:"capital"`
	Adresse          *Adresse          `xml:"adresse"`
}

// LooseAdresse accepts an address written either with the france or
// etranger wrapper or with the domestic fields inline, as establishment
// addresses are.
type LooseAdresse struct {
	France

	Domestic *France   `xml:"france"`
	Foreign  *Etranger `xml:"etranger"`
}

// Resolve returns the address in its wrapped form.
func (a *LooseAdresse) Resolve() *Adresse {
	if a == nil {
		return nil
	}
	if a.Domestic != nil || a.Foreign != nil {
		return &Adresse{France: a.Domestic, Etranger: a.Foreign}
	}
	f := a.France
	return &Adresse{France: &f}
}
