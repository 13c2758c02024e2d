package value

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
)

const (
	officerSeparator = " : "
	registryMarker   = "RCS "
)

// IsOfficerChange reports whether an administration text describes a
// change of officers rather than a roster.
func (n *Normalisers) IsOfficerChange(text string) bool {
	for _, marker := range n.vocab.OfficerChangeMarkers {
		if containsWord(text, marker) {
			return true
		}
	}
	return false
}

// Officers tokenises an administration listing such as
// "Président : Jean Dupont Gérant : Marie Martin" into (role, name) pairs.
//
// The text is split on " : " separators, skipping those that follow a
// known label fragment or precede a registry code. Interior tokens hold
// the previous name and the next role and are split before the first
// known role word. An odd number of tokens cannot be paired and the
// second result is false.
func (n *Normalisers) Officers(text string) ([]domain.Officer, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	parts := n.splitSeparators(text)
	if len(parts) > 2 {
		tokens := []string{parts[0]}
		for _, part := range parts[1 : len(parts)-1] {
			tokens = append(tokens, n.splitBeforeRole(part)...)
		}
		parts = append(tokens, parts[len(parts)-1])
	}

	if len(parts)%2 != 0 {
		if strings.Contains(text, ":") {
			logger.Debug("officers: cannot pair %d tokens %q", len(parts), parts)
		}
		return nil, false
	}

	officers := make([]domain.Officer, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		officers = append(officers, domain.Officer{
			Role: strings.TrimSpace(parts[i]),
			Name: strings.TrimSpace(parts[i+1]),
		})
	}
	return officers, true
}

func (n *Normalisers) splitSeparators(text string) []string {
	var parts []string
	start := 0
	for offset := 0; ; {
		i := strings.Index(text[offset:], officerSeparator)
		if i < 0 {
			break
		}
		i += offset
		offset = i + len(officerSeparator)

		if n.isLabelSeparator(text[start:i], text[offset:]) {
			continue
		}
		parts = append(parts, text[start:i])
		start = offset
	}
	parts = append(parts, text[start:])

	// Trailing empty tokens carry no name.
	for len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func (n *Normalisers) isLabelSeparator(before, after string) bool {
	if strings.HasPrefix(after, registryMarker) {
		return true
	}
	for _, fragment := range n.vocab.OfficerSeparatorExceptions {
		if strings.HasSuffix(before, fragment) {
			return true
		}
	}
	return false
}

// splitBeforeRole splits s at the first space followed by a role word.
func (n *Normalisers) splitBeforeRole(s string) []string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			continue
		}
		rest := s[i+1:]
		for _, role := range n.roles {
			if size, ok := hasWordPrefixFold(rest, role); ok && size > 0 {
				return []string{s[:i], rest}
			}
		}
	}
	return []string{s}
}

// hasWordPrefixFold reports whether s starts with prefix, ignoring case,
// and the prefix ends on a word boundary. It returns the byte length of
// the matched prefix in s.
func hasWordPrefixFold(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != pr && !strings.EqualFold(string(sr), string(pr)) {
			return 0, false
		}
		i += size
	}
	if i < len(s) {
		next, _ := utf8.DecodeRuneInString(s[i:])
		if isWordRune(next) {
			return 0, false
		}
	}
	return i, true
}

// containsWord reports whether sub occurs in s without being glued to
// surrounding word characters.
func containsWord(s, sub string) bool {
	if sub == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(sub)
	last, _ := utf8.DecodeLastRuneInString(sub)

	for offset := 0; offset <= len(s)-len(sub); {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return false
		}
		i += offset
		end := i + len(sub)

		okBefore := true
		if isWordRune(first) && i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:i])
			okBefore = !isWordRune(prev)
		}
		okAfter := true
		if isWordRune(last) && end < len(s) {
			next, _ := utf8.DecodeRuneInString(s[end:])
			okAfter = !isWordRune(next)
		}
		if okBefore && okAfter {
			return true
		}
		offset = i + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
