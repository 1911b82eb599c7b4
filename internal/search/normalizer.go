package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"days/internal/config"
	"days/internal/geocoding"
	"days/internal/models"
)

// Place sources
const (
	SourceCatalog  = "catalog"
	SourceCity     = "city"
	SourceGeocoder = "geocoder"
	SourceCaller   = "caller"
)

// ErrEmptyQuery is returned for blank or placeholder text.
var ErrEmptyQuery = errors.New("empty search query")

// Geocoder resolves free text to coordinates.
type Geocoder interface {
	Forward(ctx context.Context, query string) (*geocoding.ForwardResult, error)
}

// Normalizer resolves locations against the catalog, then the city list, then
// the geocoder. Words describing a kind of trip resolve to a concept, never
// to a pin.
type Normalizer struct {
	spots    map[string]models.Place
	cities   map[string]models.Place
	synonyms geocoding.Synonyms
	concepts map[string][]models.Place
	geocoder Geocoder
}

// NewNormalizer indexes the catalog. geo may be nil to disable network lookups.
func NewNormalizer(cat *config.Catalog, geo Geocoder) *Normalizer {
	n := &Normalizer{
		spots:    make(map[string]models.Place),
		cities:   make(map[string]models.Place),
		synonyms: geocoding.Synonyms(cat.SynonymTable()),
		concepts: make(map[string][]models.Place),
		geocoder: geo,
	}

	aliasOwners := make(map[string][]models.Place)
	for _, s := range cat.Spots {
		p := models.Place{
			ID:          "spot-" + s.ID,
			Key:         CanonicalKey(s.Name),
			Name:        s.Name,
			NameEN:      s.NameEN,
			Country:     s.Country,
			Coordinates: models.Coordinates{Lat: s.Lat, Lng: s.Lng},
			Category:    s.Category,
			Source:      SourceCatalog,
		}
		n.spots[Fold(s.Name)] = p
		if s.NameEN != "" {
			n.spots[Fold(s.NameEN)] = p
		}
		for _, a := range s.Aliases {
			aliasOwners[Fold(a)] = appendUnique(aliasOwners[Fold(a)], p)
		}
		if s.Category != "" {
			n.concepts[Fold(s.Category)] = appendUnique(n.concepts[Fold(s.Category)], p)
		}
		for _, k := range s.Keywords {
			n.concepts[Fold(k)] = appendUnique(n.concepts[Fold(k)], p)
		}
	}

	// An alias shared by several spots (a country, a region) describes a
	// set of places, so it behaves like a concept.
	for alias, owners := range aliasOwners {
		if len(owners) == 1 {
			if _, taken := n.spots[alias]; !taken {
				n.spots[alias] = owners[0]
			}
			continue
		}
		n.concepts[alias] = append(n.concepts[alias], owners...)
	}

	for _, c := range cat.Concepts {
		if _, ok := n.concepts[Fold(c)]; !ok {
			n.concepts[Fold(c)] = nil
		}
	}

	for _, c := range cat.Cities {
		n.cities[Fold(c.Name)] = models.Place{
			ID:          "city-" + strings.ReplaceAll(Fold(c.Name), " ", "-"),
			Key:         CanonicalKey(c.Name),
			Name:        c.Name,
			Country:     c.Country,
			Coordinates: models.Coordinates{Lat: c.Lat, Lng: c.Lng},
			Source:      SourceCity,
		}
	}

	return n
}

// Resolve normalizes a location. Resolved locations pass through; raw text
// is looked up in the catalog, the city list, the concept words and finally
// the geocoder. A geocoder failure other than "not found" is returned
// alongside a not_found resolution.
func (n *Normalizer) Resolve(ctx context.Context, loc models.Location) (models.Resolution, error) {
	if loc.Kind == models.LocationResolved {
		return n.passthrough(loc)
	}

	key := CanonicalKey(loc.Text)
	query := string(key)
	if models.IsPlaceholder(query) {
		return models.Resolution{Kind: models.ResolvedMissing, Query: query}, ErrEmptyQuery
	}

	if p, ok := n.lookup(query); ok {
		return models.Resolution{Kind: models.ResolvedPlace, Query: query, Place: &p}, nil
	}

	if related, ok := n.concepts[Fold(query)]; ok {
		return models.Resolution{Kind: models.ResolvedConcept, Query: query, Related: related}, nil
	}

	if n.geocoder == nil {
		return models.Resolution{Kind: models.ResolvedMissing, Query: query}, nil
	}

	res, err := n.geocoder.Forward(ctx, query)
	if err != nil {
		if errors.Is(err, geocoding.ErrNotFound) {
			return models.Resolution{Kind: models.ResolvedMissing, Query: query}, nil
		}
		slog.Warn("forward geocoding failed", "query", query, "error", err)
		return models.Resolution{Kind: models.ResolvedMissing, Query: query}, err
	}

	name := n.synonyms.Canonical(res.Name)
	// The geocoder may name a place the catalog knows better.
	if p, ok := n.lookup(name); ok {
		return models.Resolution{Kind: models.ResolvedPlace, Query: query, Place: &p}, nil
	}
	return models.Resolution{
		Kind:  models.ResolvedPlace,
		Query: query,
		Place: &models.Place{
			ID:          "geo-" + Fold(name),
			Key:         n.Key(name),
			Name:        string(CanonicalKey(name)),
			Country:     res.Country,
			Coordinates: res.Coordinates,
			Source:      SourceGeocoder,
		},
	}, nil
}

// Key maps place text to the key scores and receipts are filed under. Known
// places keep their catalog key; any other name is case-folded so spelling
// variants share one key.
func (n *Normalizer) Key(text string) models.PlaceKey {
	key := CanonicalKey(text)
	if models.IsPlaceholder(string(key)) {
		return key
	}
	if p, ok := n.lookup(string(key)); ok {
		return p.Key
	}
	return models.PlaceKey(Fold(string(key)))
}

// lookup checks the catalog and the city list, directly and through the
// synonym table.
func (n *Normalizer) lookup(query string) (models.Place, bool) {
	candidates := []string{query}
	if canonical, ok := n.synonyms.Lookup(query); ok {
		candidates = append(candidates, canonical)
	}
	for _, c := range candidates {
		if p, ok := n.spots[Fold(c)]; ok {
			return p, true
		}
	}
	for _, c := range candidates {
		if p, ok := n.cities[Fold(c)]; ok {
			return p, true
		}
	}
	return models.Place{}, false
}

func (n *Normalizer) passthrough(loc models.Location) (models.Resolution, error) {
	text := string(loc.PlaceKey)
	if text == "" {
		text = loc.Name
	}
	key := n.Key(text)
	if models.IsPlaceholder(string(key)) {
		return models.Resolution{Kind: models.ResolvedMissing, Query: loc.Name}, ErrEmptyQuery
	}

	name := string(CanonicalKey(loc.Name))
	if name == "" {
		name = string(CanonicalKey(text))
	}
	id := loc.ID
	if id == "" {
		id = "place-" + Fold(string(key))
	}
	return models.Resolution{
		Kind:  models.ResolvedPlace,
		Query: name,
		Place: &models.Place{
			ID:          id,
			Key:         key,
			Name:        name,
			Country:     loc.Country,
			Coordinates: loc.Coordinates,
			Category:    loc.Category,
			Source:      SourceCaller,
		},
	}, nil
}

func appendUnique(places []models.Place, p models.Place) []models.Place {
	for _, existing := range places {
		if existing.ID == p.ID {
			return places
		}
	}
	return append(places, p)
}
