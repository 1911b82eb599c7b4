package models

// LocationKind tags the variant held by a Location.
type LocationKind string

// Location variants
const (
	LocationRaw      LocationKind = "raw"
	LocationResolved LocationKind = "resolved"
)

// Location is what callers hand to the search normalizer: either raw text
// typed by the user or an already-resolved place (ticker entry, search hit).
type Location struct {
	Kind        LocationKind `json:"kind"`
	Text        string       `json:"text,omitempty"`
	ID          string       `json:"id,omitempty"`
	PlaceKey    PlaceKey     `json:"place_key,omitempty"`
	Coordinates Coordinates  `json:"coordinates"`
	Name        string       `json:"name,omitempty"`
	Country     string       `json:"country,omitempty"`
	Category    string       `json:"category,omitempty"`
}

// RawLocation builds a free-text location.
func RawLocation(text string) Location {
	return Location{Kind: LocationRaw, Text: text}
}

// ResolutionKind describes how a location was resolved.
type ResolutionKind string

// Resolution outcomes
const (
	ResolvedPlace   ResolutionKind = "place"
	ResolvedConcept ResolutionKind = "concept"
	ResolvedMissing ResolutionKind = "not_found"
)

// Place is a fully resolved location ready to become a pin.
type Place struct {
	ID          string      `json:"id"`
	Key         PlaceKey    `json:"place_key"`
	Name        string      `json:"name"`
	NameEN      string      `json:"name_en,omitempty"`
	Country     string      `json:"country,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	Category    string      `json:"category,omitempty"`
	Source      string      `json:"source"` // catalog, city, geocoder, caller
}

// GalleryQuery derives the gallery lookup for this place. The English name
// searches better than the local one.
func (p Place) GalleryQuery() GalleryQuery {
	name := p.NameEN
	if name == "" {
		name = p.Name
	}
	return GalleryQuery{PlaceKey: p.Key, DisplayName: name, Country: p.Country}
}

// Resolution is the result of normalizing a Location. Related lists catalog
// places matching a concept.
type Resolution struct {
	Kind    ResolutionKind `json:"kind"`
	Query   string         `json:"query"`
	Place   *Place         `json:"place,omitempty"`
	Related []Place        `json:"related,omitempty"`
}
