package domain

import "slices"

// Confidence levels attached to records.
const (
	ConfidenceHigh = "HIGH"
)

// ClassificationScheme is the scheme name for BODACC category codes.
const ClassificationScheme = "fr-bodacc"

// UpdateKind says how an announcement affects an earlier one.
type UpdateKind string

const (
	// UpdateCorrection marks a rectifying announcement.
	UpdateCorrection UpdateKind = "correction"

	// UpdateCancellation marks a cancelling announcement.
	UpdateCancellation UpdateKind = "cancellation"
)

// UpdateAction references the announcement being corrected or cancelled.
type UpdateAction struct {
	Type   UpdateKind       `json:"type"`
	Object *AnnouncementRef `json:"object,omitempty"`
}

// Court is the court or registry that issued the announcement.
type Court struct {
	Name           string `json:"court,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
}

// Body is the free-text content of a notice.
type Body struct {
	Value     string `json:"value"`
	MediaType string `json:"media_type"`
}

// Classification is a category code in a named scheme.
type Classification struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// OtherAttributes holds source details without a normalised home.
type OtherAttributes struct {
	// NoticeType is the raw notice type: annonce, creation, rectificatif
	// or annulation.
	NoticeType string `json:"notice_type,omitempty"`

	// Format is the schema family the record was read from.
	Format Format `json:"format,omitempty"`
}

// Record is one normalised announcement, the pipeline's unit of output.
type Record struct {
	Identifier    int    `json:"identifier"`
	UID           string `json:"uid"`
	Issue         Issue  `json:"issue"`
	DatePublished string `json:"date_published,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
	SampleDate    string `json:"sample_date,omitempty"`
	RetrievedAt   string `json:"retrieved_at,omitempty"`
	Confidence    string `json:"confidence,omitempty"`

	Publisher      *Court           `json:"publisher,omitempty"`
	UpdateAction   *UpdateAction    `json:"update_action,omitempty"`
	Subjects       []Entity         `json:"subjects,omitempty"`
	About          *Act             `json:"about,omitempty"`
	Title          string           `json:"title,omitempty"`
	Body           *Body            `json:"body,omitempty"`
	Description    string           `json:"description,omitempty"`
	Classification []Classification `json:"classification,omitempty"`

	OtherAttributes OtherAttributes `json:"other_attributes"`
}

// NewTemplate builds the per-document default record. Handlers Clone it
// once per announcement and never mutate the template itself.
func NewTemplate(env *Envelope, format Format, datePublished string) *Record {
	return &Record{
		Issue:         env.Issue(),
		DatePublished: datePublished,
		SourceURL:     env.SourceURL,
		SampleDate:    env.RetrievedAt,
		RetrievedAt:   env.RetrievedAt,
		Confidence:    ConfidenceHigh,
		OtherAttributes: OtherAttributes{
			Format: format,
		},
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Publisher != nil {
		p := *r.Publisher
		c.Publisher = &p
	}
	if r.UpdateAction != nil {
		u := *r.UpdateAction
		u.Object = r.UpdateAction.Object.clone()
		c.UpdateAction = &u
	}
	c.Subjects = cloneEntities(r.Subjects)
	c.About = r.About.Clone()
	if r.Body != nil {
		b := *r.Body
		c.Body = &b
	}
	c.Classification = slices.Clone(r.Classification)
	return &c
}

func (a *AnnouncementRef) clone() *AnnouncementRef {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
