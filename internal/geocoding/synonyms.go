package geocoding

import "strings"

// Synonyms maps lowercased aliases (local names, abbreviations) to a
// canonical English place name.
type Synonyms map[string]string

// Lookup returns the canonical name for an alias.
func (s Synonyms) Lookup(alias string) (string, bool) {
	name, ok := s[strings.ToLower(strings.TrimSpace(alias))]
	return name, ok
}

// Canonical returns the canonical name for raw, or raw unchanged.
func (s Synonyms) Canonical(raw string) string {
	if name, ok := s.Lookup(raw); ok {
		return name
	}
	return raw
}
