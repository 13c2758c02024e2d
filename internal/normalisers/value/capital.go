package value

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
)

// variableCapital matches free-text amounts such as "22000, 00 EUROS" or
// "1 500 euros (capital variable)".
var variableCapital = regexp.MustCompile(
	`(?i)^\s*(\d[\d\s.]*(?:,\s?\d+)?)\s*(euros?|eur|francs fran[cç]ais|frf)?\.?\s*(?:\(?capital variable\)?)?\s*$`)

// Capital builds a monetary capital from the two mutually exclusive source
// fields. A nil pointer means the field is absent. The fixed amount wins
// when both are present.
//
// Tiers, in order: fixed (amount + currency code), variable-regex (amount
// and optional currency extracted from text), raw (text kept unparsed).
func (n *Normalisers) Capital(fixed *string, currency string, variable *string) *domain.Capital {
	if fixed != nil && variable != nil {
		logger.Warn("capital: expected one of fixed or variable amount, got both")
	}

	switch {
	case fixed != nil:
		return n.fixedCapital(*fixed, currency)
	case variable != nil:
		return n.variableCapital(*variable)
	default:
		return nil
	}
}

func (n *Normalisers) fixedCapital(amount, currency string) *domain.Capital {
	c := &domain.Capital{}

	value, err := ParseAmount(amount)
	if err != nil {
		logger.Warn("capital tier=raw reason=%q value=%q", "unparseable fixed amount", amount)
		c.Raw = strings.TrimSpace(amount)
	} else {
		logger.Debug("capital tier=fixed value=%q", amount)
		c.Amount = &value
	}

	switch code, ok := n.vocab.Currency(currency); {
	case strings.TrimSpace(currency) == "":
		logger.Warn("capital: missing currency for amount %q", amount)
	case !ok:
		logger.Warn("capital: unrecognised currency %q", currency)
	default:
		c.Currency = code
	}
	return c
}

func (n *Normalisers) variableCapital(text string) *domain.Capital {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	m := variableCapital.FindStringSubmatch(text)
	if m != nil {
		if value, err := parseTextAmount(m[1]); err == nil {
			c := &domain.Capital{Amount: &value, Variable: true}
			if m[2] != "" {
				if code, ok := n.vocab.Currency(m[2]); ok {
					c.Currency = code
				} else {
					logger.Warn("capital: unrecognised currency %q", m[2])
				}
			}
			logger.Debug("capital tier=variable-regex value=%q", text)
			return c
		}
	}

	logger.Debug("capital tier=raw value=%q", text)
	return &domain.Capital{Raw: text, Variable: true}
}

// thousandsDot matches an amount whose only dot groups thousands, as in
// "10.000".
var thousandsDot = regexp.MustCompile(`^\d+\.\d{3}$`)

// parseTextAmount parses an amount written in free text, where a lone dot
// followed by exactly three digits separates thousands.
func parseTextAmount(s string) (float64, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if thousandsDot.MatchString(s) {
		s = strings.Replace(s, ".", "", 1)
	}
	return ParseAmount(s)
}

// ParseAmount parses a French-formatted decimal amount. Whitespace is
// removed; a comma is the decimal separator and dots are then thousands
// separators.
func ParseAmount(s string) (float64, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}
