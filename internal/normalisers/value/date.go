package value

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// Date layouts accepted by Date.
const (
	// LayoutISO is the canonical output layout.
	LayoutISO = "2006-01-02"

	// LayoutLong is a spelled-out date such as "1er février 2015".
	LayoutLong = "2 January 2006"

	// LayoutDMY is a slash-separated day-first date.
	LayoutDMY = "02/01/2006"

	// LayoutYMD is a slash-separated year-first date.
	LayoutYMD = "2006/01/02"
)

var firstOrdinal = regexp.MustCompile(`^1er\b`)

// Date parses value with each layout in turn and returns the first match
// formatted as YYYY-MM-DD. With no layouts LayoutISO is used. Layouts that
// spell out months get French month names replaced by English ones, a
// leading "1er" reduced to "1" and whitespace normalised first.
//
// An empty value returns "" and no error. A value no layout accepts
// returns an error naming the value.
func (n *Normalisers) Date(value string, layouts ...string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if len(layouts) == 0 {
		layouts = []string{LayoutISO}
	}

	for _, layout := range layouts {
		candidate := value
		if strings.Contains(layout, "January") {
			candidate = n.englishMonths(candidate)
		}
		t, err := time.Parse(layout, candidate)
		if err == nil {
			return t.Format(LayoutISO), nil
		}
	}
	return "", fmt.Errorf("%w: unparseable date %q", domain.ErrInvalidInput, value)
}

// PublicationDate parses an issue's dateParution, which comes in three
// conventions depending on the format and schema version.
func (n *Normalisers) PublicationDate(value string) (string, error) {
	return n.Date(value, LayoutDMY, LayoutYMD, LayoutISO)
}

func (n *Normalisers) englishMonths(value string) string {
	value = n.months.ReplaceAllStringFunc(value, func(match string) string {
		if english, ok := n.monthMap[strings.ToLower(match)]; ok {
			return english
		}
		return match
	})
	value = firstOrdinal.ReplaceAllString(value, "1")
	value = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, value)
	return strings.Join(strings.Fields(value), " ")
}
