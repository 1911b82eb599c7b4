// Package search turns what a visitor typed or picked into a canonical place.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"days/internal/models"
)

// PinMarker prefixes pin labels in the client and is never part of a name.
const PinMarker = "📍"

// CanonicalKey strips the pin marker, NFC-normalizes and collapses runs of
// whitespace. Score keys also go through Normalizer.Key.
func CanonicalKey(name string) models.PlaceKey {
	name = strings.ReplaceAll(name, PinMarker, "")
	name = norm.NFC.String(name)
	return models.PlaceKey(strings.Join(strings.Fields(name), " "))
}

// Fold case-folds a canonical key for locale-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(string(CanonicalKey(s)))
}
