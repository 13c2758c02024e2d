package domain

// ActType tags the Act payload.
type ActType string

const (
	// ActCreation is a business creation (RCS-A).
	ActCreation ActType = "creation"

	// ActRegistration is a registration at the trade registry (RCS-A).
	ActRegistration ActType = "registration"

	// ActSale is the sale or transfer of a business (RCS-A).
	ActSale ActType = "sale"

	// ActGeneralModification is a change to a registered entity (RCS-B).
	ActGeneralModification ActType = "general-modification"

	// ActStruckOff is the removal of an entity from the registry (RCS-B).
	ActStruckOff ActType = "struck-off"

	// ActFiling is the filing of annual accounts (BILAN).
	ActFiling ActType = "filing"

	// ActJudgment is a court judgment in insolvency proceedings (PCL).
	ActJudgment ActType = "judgment"

	// ActNotice is a free-text notice (DIV).
	ActNotice ActType = "notice"
)

// PropertyType classifies an establishment.
type PropertyType string

const (
	PropertyPrimary   PropertyType = "primary"
	PropertySecondary PropertyType = "secondary"
	PropertyOther     PropertyType = "other"
)

// Capital is a monetary capital amount. When the source text could not be
// parsed only Raw is set.
type Capital struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Variable bool     `json:"variable,omitempty"`
	Raw      string   `json:"raw,omitempty"`
}

// Journal is the newspaper a sale was first announced in.
type Journal struct {
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Location is an establishment listed on a registry announcement.
type Location struct {
	Name         string       `json:"name,omitempty"`
	Activity     string       `json:"activity,omitempty"`
	Address      *Address     `json:"address,omitempty"`
	Origin       string       `json:"origin,omitempty"`
	PropertyType PropertyType `json:"property_type,omitempty"`
}

// Act is the legal event an announcement describes. Fields are optional
// and only those relevant to Type are populated.
type Act struct {
	Type ActType `json:"type"`

	// Registry acts.
	DateRegistered      string           `json:"date_registered,omitempty"`
	StartDate           string           `json:"start_date,omitempty"`
	EffectiveDate       string           `json:"effective_date,omitempty"`
	Capital             *Capital         `json:"capital,omitempty"`
	Journal             *Journal         `json:"journal,omitempty"`
	Opposition          string           `json:"opposition,omitempty"`
	DebtDeclaration     string           `json:"debt_declaration,omitempty"`
	PreviousPublication *AnnouncementRef `json:"previous_publication,omitempty"`
	Locations           []Location       `json:"locations,omitempty"`
	PreviousOwners      []Entity         `json:"previous_owners,omitempty"`
	PreviousOperators   []Entity         `json:"previous_operators,omitempty"`

	// Striking-off.
	DateCeased string `json:"date_ceased,omitempty"`
	Comment    string `json:"comment,omitempty"`

	// Account filing.
	ClosingDate string `json:"closing_date,omitempty"`
	FilingType  string `json:"filing_type,omitempty"`

	// Judgment.
	Family     string `json:"family,omitempty"`
	Nature     string `json:"nature,omitempty"`
	Date       string `json:"date,omitempty"`
	Complement string `json:"complement,omitempty"`
	Annulled   bool   `json:"annulled,omitempty"`
}

// Clone returns a deep copy of the act.
func (a *Act) Clone() *Act {
	if a == nil {
		return nil
	}
	c := *a
	if a.Capital != nil {
		cp := *a.Capital
		if a.Capital.Amount != nil {
			amount := *a.Capital.Amount
			cp.Amount = &amount
		}
		c.Capital = &cp
	}
	if a.Journal != nil {
		j := *a.Journal
		c.Journal = &j
	}
	c.PreviousPublication = a.PreviousPublication.clone()
	if a.Locations != nil {
		c.Locations = make([]Location, len(a.Locations))
		for i, l := range a.Locations {
			l.Address = l.Address.clone()
			c.Locations[i] = l
		}
	}
	c.PreviousOwners = cloneEntities(a.PreviousOwners)
	c.PreviousOperators = cloneEntities(a.PreviousOperators)
	return &c
}
