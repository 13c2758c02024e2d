package xmldoc

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

var declaredEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// Payload returns the envelope's document as UTF-8 text.
//
// Text payloads are used as is. Raw payloads are decoded from the charset
// named in their XML declaration; without a declaration, bytes that are
// not valid UTF-8 are read as ISO-8859-1.
func Payload(env *domain.Envelope) ([]byte, error) {
	switch {
	case env.Document != "":
		return []byte(env.Document), nil
	case env.DocumentBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(env.DocumentBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding base64 payload: %v", domain.ErrInvalidInput, err)
		}
		return ToUTF8(raw)
	default:
		return nil, fmt.Errorf("%w: envelope carries no document", domain.ErrInvalidInput)
	}
}

// ToUTF8 re-encodes raw document bytes to UTF-8.
func ToUTF8(raw []byte) ([]byte, error) {
	enc, err := sourceEncoding(raw)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return raw, nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: re-encoding payload: %v", domain.ErrInvalidInput, err)
	}
	return out, nil
}

// sourceEncoding returns the encoding raw must be decoded from, or nil
// when raw is already UTF-8.
func sourceEncoding(raw []byte) (encoding.Encoding, error) {
	m := declaredEncoding.FindSubmatch(raw)
	if m == nil {
		if utf8.Valid(raw) {
			return nil, nil
		}
		return charmap.ISO8859_1, nil
	}

	label := string(m[1])
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unsupported document encoding %q", domain.ErrInvalidInput, label)
	}
	if name, _ := ianaindex.IANA.Name(enc); name == "UTF-8" {
		return nil, nil
	}
	return enc, nil
}
