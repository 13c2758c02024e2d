package domain

// Publisher is the organisation that publishes the bulletin.
type Publisher struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Publication describes the bulletin series.
type Publication struct {
	Publisher        Publisher `json:"publisher"`
	JurisdictionCode string    `json:"jurisdiction_code"`
	Title            string    `json:"title"`
	URL              string    `json:"url,omitempty"`
}

// DefaultPublication returns the BODACC publication provenance.
func DefaultPublication() Publication {
	return Publication{
		Publisher: Publisher{
			Name: "Direction de l'information légale et administrative",
			URL:  "http://www.dila.premier-ministre.gouv.fr/",
		},
		JurisdictionCode: "fr",
		Title:            "Bulletin officiel des annonces civiles et commerciales",
		URL:              "http://www.bodacc.fr/",
	}
}

// Issue is one numbered edition of a bulletin sub-series.
type Issue struct {
	Publication Publication `json:"publication"`
	Identifier  string      `json:"identifier"`
	EditionID   string      `json:"edition_id"`
	URL         string      `json:"url,omitempty"`
}

// IssueRef points at an issue by number and edition name.
type IssueRef struct {
	Identifier string `json:"identifier"`
	EditionID  string `json:"edition_id,omitempty"`
}

// AnnouncementRef points at an earlier announcement.
type AnnouncementRef struct {
	Issue         IssueRef `json:"issue"`
	DatePublished string   `json:"date_published,omitempty"`
	Identifier    int      `json:"identifier"`
}
