package models

import "strings"

// PlaceKey is the canonical identifier joining pins, receipts and cache entries.
// Keys are compared exactly; boundary folding happens in the search package.
type PlaceKey string

// String returns the key as a plain string.
func (k PlaceKey) String() string {
	return string(k)
}

// Placeholder display names used while a place is still being resolved.
const (
	ScanningLabel  = "Scanning…"
	SearchingLabel = "Searching..."
)

// placeholderNames are sentinel names that must never reach aggregate scores
// or take part in pin deduplication. Stored lowercased.
var placeholderNames = map[string]struct{}{
	"":             {},
	"unknown":      {},
	"scanning…":    {},
	"scanning...":  {},
	"searching...": {},
	"searching…":   {},
	"new session":  {},
	"selected":     {},
}

// IsPlaceholder reports whether name is an empty, unknown or in-flight marker.
func IsPlaceholder(name string) bool {
	_, ok := placeholderNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
