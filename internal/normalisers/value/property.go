package value

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
)

var (
	// originRegistrationPrefix precedes origins on registrations that
	// follow an earlier notice.
	originRegistrationPrefix = regexp.MustCompile(`^immatriculation d'une personne (?:morale|physique) après 1er avis`)

	originPricedSuffix = regexp.MustCompile(`(?:^|\s)[\d.,\s]+\s(?:eur|euros?|francs)\.?$`)

	originFirstNotice = regexp.MustCompile(
		`^(?:(?:achat|fonds acquis par achat)\.\s)?date du premier avis publié au bodacc\s:\s\d+\s\S+\s\d+$`)
)

// PropertyType resolves an establishment quality through the controlled
// vocabulary. Unknown values are reported and yield "".
func (n *Normalisers) PropertyType(text string) domain.PropertyType {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t, ok := n.vocab.PropertyType(text)
	if !ok {
		logger.Warn("property type: unrecognised value %q", text)
		return ""
	}
	return domain.PropertyType(t)
}

// Origin reports whether a free-text property origin is recognised, either
// as a known phrase or as a phrase ending in a price. Unrecognised origins
// are logged at debug level; the text is always kept by the caller.
func (n *Normalisers) Origin(text string) bool {
	origin := strings.ToLower(strings.TrimSpace(text))
	if origin == "" {
		return false
	}
	origin = strings.TrimSpace(originRegistrationPrefix.ReplaceAllString(origin, ""))
	origin = strings.TrimPrefix(origin, ". ")

	switch {
	case origin == "":
		logger.Debug("origin tier=prefix-only value=%q", text)
	case n.vocab.IsOrigin(origin):
		logger.Debug("origin tier=known value=%q", text)
	case originPricedSuffix.MatchString(origin):
		logger.Debug("origin tier=priced value=%q", text)
	case originFirstNotice.MatchString(origin):
		logger.Debug("origin tier=first-notice value=%q", text)
	default:
		logger.Debug("origin tier=unrecognised value=%q", text)
		return false
	}
	return true
}
