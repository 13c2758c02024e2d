package value

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/bodacc/internal/vocab"
)

// Normalisers holds the compiled lookup structures built from a vocabulary.
// It is immutable and safe for concurrent use.
type Normalisers struct {
	vocab    *vocab.Vocabulary
	months   *regexp.Regexp
	monthMap map[string]string
	roles    []string
}

// New compiles the normalisers for a vocabulary. A nil vocabulary selects
// the embedded defaults.
func New(v *vocab.Vocabulary) *Normalisers {
	if v == nil {
		v = vocab.Default()
	}

	names := make([]string, 0, len(v.Months))
	monthMap := make(map[string]string, len(v.Months))
	for name, english := range v.Months {
		names = append(names, regexp.QuoteMeta(name))
		monthMap[strings.ToLower(name)] = english
	}

	return &Normalisers{
		vocab:    v,
		months:   regexp.MustCompile(`(?i)\b(?:` + strings.Join(names, "|") + `)\b`),
		monthMap: monthMap,
		roles:    v.DirectorRoles,
	}
}

// Vocabulary returns the vocabulary the normalisers were built from.
func (n *Normalisers) Vocabulary() *vocab.Vocabulary {
	return n.vocab
}
