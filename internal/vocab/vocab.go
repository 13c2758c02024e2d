// Package vocab holds the controlled vocabularies the normalisers match
// source text against: month names, currencies, officer roles, property
// types, creation categories, property origins and registry codes.
//
// The tables are data, not code. Defaults are embedded from
// vocabulary.toml and can be extended at start-up from a user TOML file
// with the same layout. A loaded Vocabulary is never mutated.
package vocab

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed vocabulary.toml
var defaultVocabulary []byte

// Vocabulary is an immutable set of lookup tables.
type Vocabulary struct {
	Months                     map[string]string `toml:"months"`
	Currencies                 map[string]string `toml:"currencies"`
	PropertyTypes              map[string]string `toml:"property_types"`
	NoticeTypes                map[string]string `toml:"notice_types"`
	ActTypes                   map[string]string `toml:"act_types"`
	DirectorRoles              []string          `toml:"director_roles"`
	OfficerChangeMarkers       []string          `toml:"officer_change_markers"`
	OfficerSeparatorExceptions []string          `toml:"officer_separator_exceptions"`
	Categories                 []string          `toml:"categories"`
	PropertyOrigins            []string          `toml:"property_origins"`
	RegistryCodes              []string          `toml:"registry_codes"`

	categories map[string]struct{}
	origins    map[string]struct{}
	registries map[string]struct{}
}

var loadDefault = sync.OnceValues(func() (*Vocabulary, error) {
	return Parse(defaultVocabulary)
})

// Default returns the embedded vocabulary.
func Default() *Vocabulary {
	v, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("vocab: embedded vocabulary is invalid: %v", err))
	}
	return v
}

// Parse decodes a vocabulary from TOML.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding vocabulary: %w", err)
	}
	v.index()
	return &v, nil
}

// Extend returns a new vocabulary with the tables read from r merged over
// the receiver. Map entries in r replace existing keys; list entries are
// appended when not already present.
func (v *Vocabulary) Extend(r io.Reader) (*Vocabulary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	ext, err := Parse(data)
	if err != nil {
		return nil, err
	}

	merged := &Vocabulary{
		Months:                     mergeMap(v.Months, ext.Months),
		Currencies:                 mergeMap(v.Currencies, ext.Currencies),
		PropertyTypes:              mergeMap(v.PropertyTypes, ext.PropertyTypes),
		NoticeTypes:                mergeMap(v.NoticeTypes, ext.NoticeTypes),
		ActTypes:                   mergeMap(v.ActTypes, ext.ActTypes),
		DirectorRoles:              mergeList(v.DirectorRoles, ext.DirectorRoles),
		OfficerChangeMarkers:       mergeList(v.OfficerChangeMarkers, ext.OfficerChangeMarkers),
		OfficerSeparatorExceptions: mergeList(v.OfficerSeparatorExceptions, ext.OfficerSeparatorExceptions),
		Categories:                 mergeList(v.Categories, ext.Categories),
		PropertyOrigins:            mergeList(v.PropertyOrigins, ext.PropertyOrigins),
		RegistryCodes:              mergeList(v.RegistryCodes, ext.RegistryCodes),
	}
	merged.index()
	return merged, nil
}

func (v *Vocabulary) index() {
	v.categories = toSet(v.Categories, false)
	v.origins = toSet(v.PropertyOrigins, true)
	v.registries = toSet(v.RegistryCodes, false)
}

// Currency resolves a currency name or code to its ISO code.
func (v *Vocabulary) Currency(name string) (string, bool) {
	code, ok := v.Currencies[key(name)]
	return code, ok
}

// PropertyType resolves an establishment quality to its category.
func (v *Vocabulary) PropertyType(name string) (string, bool) {
	t, ok := v.PropertyTypes[key(name)]
	return t, ok
}

// UpdateKind maps a notice type to the update action it implies. The
// second result is false for unknown notice types; an empty kind means
// the notice is an original announcement.
func (v *Vocabulary) UpdateKind(noticeType string) (string, bool) {
	kind, ok := v.NoticeTypes[noticeType]
	return kind, ok
}

// ActType maps an RCS-A act element name to its normalised type.
func (v *Vocabulary) ActType(element string) (string, bool) {
	t, ok := v.ActTypes[element]
	return t, ok
}

// IsCategory reports whether value is a known creation category.
func (v *Vocabulary) IsCategory(value string) bool {
	_, ok := v.categories[strings.TrimSpace(value)]
	return ok
}

// IsOrigin reports whether value is a known property origin. The value
// must already be stripped of any registration prefix.
func (v *Vocabulary) IsOrigin(value string) bool {
	_, ok := v.origins[key(value)]
	return ok
}

// IsRegistryCode reports whether code is a known registry code.
func (v *Vocabulary) IsRegistryCode(code string) bool {
	_, ok := v.registries[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string, fold bool) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if fold {
			value = key(value)
		} else {
			value = strings.TrimSpace(value)
		}
		set[value] = struct{}{}
	}
	return set
}

func mergeMap(base, ext map[string]string) map[string]string {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]string, len(ext))
	}
	maps.Copy(merged, ext)
	return merged
}

func mergeList(base, ext []string) []string {
	merged := slices.Clone(base)
	for _, item := range ext {
		if !slices.Contains(merged, item) {
			merged = append(merged, item)
		}
	}
	return merged
}
