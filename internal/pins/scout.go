package pins

import (
	"context"
	"errors"
	"log/slog"

	"days/internal/geocoding"
	"days/internal/models"
	"days/internal/search"
)

// Geocoder resolves coordinates to a city.
type Geocoder interface {
	Reverse(ctx context.Context, at models.Coordinates) (*geocoding.ReverseResult, error)
}

// Recorder counts interactions.
type Recorder interface {
	Record(ctx context.Context, v models.Visitor, place models.PlaceKey, kind models.InteractionKind) models.Result[models.Receipt]
}

// Keyer maps a place name to its score key.
type Keyer interface {
	Key(text string) models.PlaceKey
}

// ErrUnresolved is returned when reverse geocoding produced no usable name.
var ErrUnresolved = errors.New("location could not be named")

// Scouter places pins in two phases: a temporary pin appears at once and is
// named when reverse geocoding returns.
type Scouter struct {
	geocoder Geocoder
	keys     Keyer
	recorder Recorder
}

// NewScouter creates a scouter. keys may be nil, in which case names are
// case-folded.
func NewScouter(geocoder Geocoder, keys Keyer, recorder Recorder) *Scouter {
	return &Scouter{geocoder: geocoder, keys: keys, recorder: recorder}
}

// Scout adds a temporary "Scanning…" pin at the given coordinates.
func (s *Scouter) Scout(reg *Registry, at models.Coordinates, category string) models.Pin {
	if category == "" {
		category = models.CategoryScout
	}
	return reg.AddOrUpdate(models.Pin{
		Coordinates: at,
		DisplayName: models.ScanningLabel,
		Kind:        models.PinTemporary,
		Category:    category,
	})
}

// Resolve names a temporary pin. On success the same pin becomes resolved
// and one view is recorded for its place. On failure it stays temporary,
// labelled with its rounded coordinates.
func (s *Scouter) Resolve(ctx context.Context, reg *Registry, v models.Visitor, id string) (models.Pin, error) {
	pin, ok := reg.Get(id)
	if !ok {
		return models.Pin{}, ErrPinNotFound
	}

	name, country, err := s.reverse(ctx, pin.Coordinates)
	if err != nil {
		slog.Warn("reverse geocoding failed", "pin", id, "lat", pin.Coordinates.Lat, "lng", pin.Coordinates.Lng, "error", err)
		pin.DisplayName = models.CoordinateLabel(pin.Coordinates)
		if updated, ok := reg.Replace(pin); ok {
			return updated, err
		}
		return pin, err
	}

	pin.Kind = models.PinResolved
	pin.DisplayName = name
	pin.Country = country
	pin.PlaceKey = s.key(name)
	updated, ok := reg.Replace(pin)
	if !ok {
		// Removed while geocoding; nothing to show or count.
		return pin, ErrPinNotFound
	}

	s.recorder.Record(ctx, v, updated.PlaceKey, models.InteractionView)
	return updated, nil
}

func (s *Scouter) key(name string) models.PlaceKey {
	if s.keys == nil {
		return models.PlaceKey(search.Fold(name))
	}
	return s.keys.Key(name)
}

func (s *Scouter) reverse(ctx context.Context, at models.Coordinates) (string, string, error) {
	if s.geocoder == nil {
		return "", "", ErrUnresolved
	}
	res, err := s.geocoder.Reverse(ctx, at)
	if err != nil {
		return "", "", err
	}
	name := string(search.CanonicalKey(res.City))
	if models.IsPlaceholder(name) {
		return "", "", ErrUnresolved
	}
	return name, res.Country, nil
}
