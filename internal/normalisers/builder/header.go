package builder

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
)

// Record starts an announcement record from the document template and the
// announcement header. The template is cloned, never modified.
func (b *Builder) Record(tmpl *domain.Record, h *schema.Header) (*domain.Record, error) {
	uid := strings.TrimSpace(h.Nojo)
	if uid == "" {
		return nil, fmt.Errorf("%w: announcement without nojo", domain.ErrInvalidInput)
	}
	id, err := value.Integer("numeroAnnonce", h.NumeroAnnonce)
	if err != nil {
		return nil, err
	}

	r := tmpl.Clone()
	r.UID = uid
	r.Identifier = id
	r.OtherAttributes.NoticeType = string(h.TypeAnnonce)

	if court := value.SingleLine(h.Tribunal); court != "" || h.NumeroDepartement != "" {
		r.Publisher = &domain.Court{
			Name:           court,
			DepartmentCode: strings.TrimSpace(h.NumeroDepartement),
		}
	}

	r.UpdateAction = b.updateAction(h)
	return r, nil
}

// updateAction is set iff the notice corrects or cancels an earlier one.
func (b *Builder) updateAction(h *schema.Header) *domain.UpdateAction {
	noticeType := string(h.TypeAnnonce)
	kind, ok := b.values.Vocabulary().UpdateKind(noticeType)
	if !ok {
		logger.Warn("notice type: unrecognised value %q nojo=%s", noticeType, h.Nojo)
		return nil
	}
	if kind == "" {
		return nil
	}

	action := &domain.UpdateAction{
		Type:   domain.UpdateKind(kind),
		Object: b.PreviousPublication(h.ParutionAvisPrecedent),
	}
	if action.Object == nil {
		logger.Warn("update action: %s without parutionAvisPrecedent nojo=%s", kind, h.Nojo)
	}
	return action
}

// PreviousPublication builds a reference to an earlier announcement. The
// publication date is spelled out ("1er mars 2015") in current schema
// versions and ISO in older ones.
func (b *Builder) PreviousPublication(p *schema.ParutionAvisPrecedent) *domain.AnnouncementRef {
	if p == nil {
		return nil
	}
	ref := &domain.AnnouncementRef{
		Issue: domain.IssueRef{
			Identifier: strings.TrimSpace(p.NumeroParution),
			EditionID:  strings.TrimSpace(p.NomPublication),
		},
	}
	ref.DatePublished = b.Date("parutionAvisPrecedent.dateParution", p.DateParution, value.LayoutLong, value.LayoutISO)

	id, err := value.Integer("parutionAvisPrecedent.numeroAnnonce", p.NumeroAnnonce)
	if err != nil {
		logger.Warn("%v", err)
	} else {
		ref.Identifier = id
	}
	return ref
}

// Date parses an optional date field. Unparseable values are logged at
// error level and omitted.
func (b *Builder) Date(field, raw string, layouts ...string) string {
	d, err := b.values.Date(raw, layouts...)
	if err != nil {
		logger.Error("%s: %v", field, err)
		return ""
	}
	return d
}
