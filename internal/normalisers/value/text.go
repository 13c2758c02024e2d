package value

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

// Integer parses a required integer field such as an announcement number.
func Integer(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer: %q", domain.ErrInvalidInput, field, s)
	}
	return n, nil
}

// StripSpace removes every whitespace character, as in registry numbers
// printed in groups ("123 456 789").
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SingleLine replaces line breaks with spaces and trims the result.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// Join joins the non-blank trimmed parts with sep.
func Join(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
