package pcl

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/xmldoc"
)

// Element names of a PCL announcement.
const (
	elemCompany   = "personneMorale"
	elemPerson    = "personnePhysique"
	elemJudgment  = "jugement"
	elemAnnulment = "jugementAnnule"
)

// headerElements are read from the typed parse and skipped here.
var headerElements = map[string]bool{
	"nojo":                  true,
	"typeAnnonce":           true,
	"numeroAnnonce":         true,
	"numeroDepartement":     true,
	"tribunal":              true,
	"identifiantClient":     true,
	"parutionAvisPrecedent": true,
}

// State is a state of the sibling-grouping machine.
type State int

const (
	// NoCurrentEntity is the initial state: no company or person marker
	// has been seen since the last flush.
	NoCurrentEntity State = iota

	// BuildingEntity means sibling fields merge into the open entity.
	BuildingEntity
)

func (s State) String() string {
	switch s {
	case NoCurrentEntity:
		return "NoCurrentEntity"
	case BuildingEntity:
		return "BuildingEntity"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Partial is an entity under construction. Exactly one field is set.
type Partial struct {
	Company *schema.PersonneMorale
	Person  *schema.PersonnePhysique
}

// Grouping is the outcome of one sibling run.
type Grouping struct {
	Entities []Partial

	// Judgment is the jugement or jugementAnnule element that ended the
	// run, or nil if the run reached its end.
	Judgment *xmldoc.Node
}

// grouper reconstructs entity boundaries from a flat sibling sequence.
// A company or person marker flushes the open entity and starts a new
// one; recognised fields merge into the open entity; a judgment ends
// grouping for the announcement.
type grouper struct {
	state    State
	current  Partial
	entities []Partial
}

// Group runs the sibling-grouping machine over the children of an
// announcement element. Unknown element names are contract violations.
func Group(siblings []*xmldoc.Node) (*Grouping, error) {
	g := &grouper{}
	for i, node := range siblings {
		switch {
		case headerElements[node.Name]:
			continue
		case node.Name == elemJudgment || node.Name == elemAnnulment:
			g.flush()
			if rest := len(siblings) - i - 1; rest > 0 {
				logger.Debug("pcl: %d elements after %s ignored", rest, node.Name)
			}
			return &Grouping{Entities: g.entities, Judgment: node}, nil
		case node.Name == elemCompany:
			g.flush()
			g.open(Partial{Company: &schema.PersonneMorale{}})
		case node.Name == elemPerson:
			g.flush()
			g.open(Partial{Person: &schema.PersonnePhysique{}})
		case fieldElements[node.Name] != nil:
			if g.state == NoCurrentEntity {
				logger.Warn("pcl: %s before any %s or %s, dropped", node.Name, elemCompany, elemPerson)
				continue
			}
			if err := g.merge(node); err != nil {
				return nil, err
			}
			continue
		default:
			return nil, fmt.Errorf("%w: unexpected element %q in state %s", domain.ErrContractViolation, node.Name, g.state)
		}

		// Markers may carry their own fields.
		for _, child := range node.Children {
			if fieldElements[child.Name] == nil {
				return nil, fmt.Errorf("%w: unexpected element %q in %s", domain.ErrContractViolation, child.Name, node.Name)
			}
			if err := g.merge(child); err != nil {
				return nil, err
			}
		}
	}

	g.flush()
	return &Grouping{Entities: g.entities}, nil
}

func (g *grouper) open(p Partial) {
	g.current = p
	g.state = BuildingEntity
}

func (g *grouper) flush() {
	if g.state == BuildingEntity {
		g.entities = append(g.entities, g.current)
	}
	g.current = Partial{}
	g.state = NoCurrentEntity
}

func (g *grouper) merge(node *xmldoc.Node) error {
	return fieldElements[node.Name](&g.current, node)
}

type mergeFunc func(p *Partial, node *xmldoc.Node) error

// fieldElements are the siblings that belong to the open entity.
var fieldElements = map[string]mergeFunc{
	"numeroImmatriculation": mergeRegistration,
	"inscriptionRM":         mergeTradesRegistration,
	"nonInscrit":            mergeNotRegistered,
	"nomCommercial":         mergeTradeName,
	"enseigne":              mergeSign,
	"activite":              mergeActivity,
	"adresse":               mergeAddress,
	"denomination":          companyField(func(pm *schema.PersonneMorale) *string { return &pm.Denomination }),
	"formeJuridique":        companyField(func(pm *schema.PersonneMorale) *string { return &pm.FormeJuridique }),
	"sigle":                 companyField(func(pm *schema.PersonneMorale) *string { return optional(&pm.Sigle) }),
	"nom":                   personField(func(pp *schema.PersonnePhysique) *string { return &pp.Nom }),
	"prenom":                personField(func(pp *schema.PersonnePhysique) *string { return &pp.Prenom }),
	"nomUsage":              personField(func(pp *schema.PersonnePhysique) *string { return &pp.NomUsage }),
	"nationalite":           personField(func(pp *schema.PersonnePhysique) *string { return &pp.Nationalite }),
	"pseudonyme":            personField(func(pp *schema.PersonnePhysique) *string { return optional(&pp.Pseudonyme) }),
}

func (p *Partial) registered() *schema.Registered {
	if p.Company != nil {
		return &p.Company.Registered
	}
	return &p.Person.Registered
}

func (p *Partial) addresses() *schema.Addresses {
	if p.Company != nil {
		return &p.Company.Addresses
	}
	return &p.Person.Addresses
}

func (p *Partial) activity() *string {
	if p.Company != nil {
		return &p.Company.Activite
	}
	return &p.Person.Activite
}

func (p *Partial) tradeName() **string {
	if p.Company != nil {
		return &p.Company.NomCommercial
	}
	return &p.Person.NomCommercial
}

func mergeRegistration(p *Partial, node *xmldoc.Node) error {
	r := p.registered()
	if r.NumeroImmatriculation != nil {
		logger.Warn("pcl: repeated numeroImmatriculation, keeping the first")
		return nil
	}
	r.NumeroImmatriculation = &schema.NumeroImmatriculation{
		NumeroIdentification:    node.ChildText("numeroIdentification"),
		NumeroIdentificationRCS: node.ChildText("numeroIdentificationRCS"),
		CodeRCS:                 node.ChildText("codeRCS"),
		NomGreffeImmat:          node.ChildText("nomGreffeImmat"),
	}
	return nil
}

// mergeTradesRegistration reads a trades register (RM) entry. It only
// applies when no trade registry number was given.
func mergeTradesRegistration(p *Partial, node *xmldoc.Node) error {
	r := p.registered()
	if r.NumeroImmatriculation != nil {
		logger.Debug("pcl: inscriptionRM ignored, numeroImmatriculation already set")
		return nil
	}
	code := node.ChildText("codeRM")
	if code == "" {
		code = "RM"
	}
	r.NumeroImmatriculation = &schema.NumeroImmatriculation{
		NumeroIdentification: node.ChildText("numeroIdentificationRM"),
		CodeRCS:              code,
		NomGreffeImmat:       node.ChildText("numeroDepartement"),
	}
	return nil
}

func mergeNotRegistered(p *Partial, node *xmldoc.Node) error {
	text := node.Text
	p.registered().NonInscrit = &text
	return nil
}

func mergeTradeName(p *Partial, node *xmldoc.Node) error {
	name := node.Text
	*p.tradeName() = &name
	return nil
}

// mergeSign keeps a shop sign as the trade name unless one is set.
func mergeSign(p *Partial, node *xmldoc.Node) error {
	if *p.tradeName() != nil {
		logger.Debug("pcl: enseigne %q ignored, nomCommercial already set", node.Text)
		return nil
	}
	return mergeTradeName(p, node)
}

func mergeActivity(p *Partial, node *xmldoc.Node) error {
	activity := p.activity()
	*activity = strings.TrimSpace(strings.Join([]string{*activity, node.Text}, " "))
	return nil
}

func mergeAddress(p *Partial, node *xmldoc.Node) error {
	a := p.addresses()
	if a.Adresse != nil {
		logger.Warn("pcl: repeated adresse, keeping the first")
		return nil
	}
	a.Adresse = Address(node)
	return nil
}

func companyField(field func(*schema.PersonneMorale) *string) mergeFunc {
	return func(p *Partial, node *xmldoc.Node) error {
		if p.Company == nil {
			logger.Warn("pcl: %s on a %s, dropped", node.Name, elemPerson)
			return nil
		}
		*field(p.Company) = node.Text
		return nil
	}
}

func personField(field func(*schema.PersonnePhysique) *string) mergeFunc {
	return func(p *Partial, node *xmldoc.Node) error {
		if p.Person == nil {
			logger.Warn("pcl: %s on a %s, dropped", node.Name, elemCompany)
			return nil
		}
		*field(p.Person) = node.Text
		return nil
	}
}

// optional allocates an absent optional field.
func optional(field **string) *string {
	if *field == nil {
		*field = new(string)
	}
	return *field
}

// Address reads an adresse element, wrapped in france or etranger or
// with the domestic fields inline.
func Address(node *xmldoc.Node) *schema.Adresse {
	if f := node.Child("france"); f != nil {
		return &schema.Adresse{France: domestic(f)}
	}
	if e := node.Child("etranger"); e != nil {
		return &schema.Adresse{Etranger: &schema.Etranger{
			Adresse: e.ChildText("adresse"),
			Pays:    e.ChildText("pays"),
		}}
	}
	return &schema.Adresse{France: domestic(node)}
}

func domestic(n *xmldoc.Node) *schema.France {
	return &schema.France{
		NumeroVoie:        n.ChildText("numeroVoie"),
		TypeVoie:          n.ChildText("typeVoie"),
		NomVoie:           n.ChildText("nomVoie"),
		ComplGeographique: n.ChildText("complGeographique"),
		BP:                n.ChildText("BP"),
		Localite:          n.ChildText("localite"),
		CodePostal:        n.ChildText("codePostal"),
		Ville:             n.ChildText("ville"),
	}
}
