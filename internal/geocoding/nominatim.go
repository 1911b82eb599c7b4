// Package geocoding talks to a Nominatim server for forward (text to
// coordinates) and reverse (coordinates to city) lookups.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"days/internal/models"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "Days/1.0 (contact: days.dev@example.com)"

	maxAttempts = 3
)

// ErrNotFound is returned when no pass produced a result.
var ErrNotFound = errors.New("location not found")

// retrySuffixes are generic trailing words stripped before the second
// forward pass ("Jeju Island" -> "Jeju").
var retrySuffixes = []string{
	"고원", "섬", "산", "해변", "폭포", "마을", "대륙", "반도", "시", "군", "구",
	"Plateau", "Island", "Mountain", "Beach", "Falls", "Village", "Peninsula", "City",
}

// ForwardResult is the best match for a free-text query.
type ForwardResult struct {
	Coordinates models.Coordinates
	Name        string
	Country     string
	DisplayName string
}

// ReverseResult describes the city around a coordinate.
type ReverseResult struct {
	FullAddress string
	City        string
	Country     string
}

// Config configures a Client. RequestsPerSecond limits outgoing calls and
// defaults to one per second.
type Config struct {
	BaseURL           string
	UserAgent         string
	Synonyms          Synonyms
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Client is a Nominatim client.
type Client struct {
	baseURL   string
	userAgent string
	synonyms  Synonyms
	http      *http.Client
	limiter   *rate.Limiter
	backoff   time.Duration
}

// New creates a Nominatim client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		synonyms:  cfg.Synonyms,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		backoff:   time.Second,
	}
}

type address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Island       string `json:"island"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

// Forward resolves free text to coordinates. It tries the canonical query,
// then the query without a generic suffix word, then the synonym of the
// stripped query.
func (c *Client) Forward(ctx context.Context, query string) (*ForwardResult, error) {
	clean := c.synonyms.Canonical(strings.TrimSpace(query))
	if clean == "" {
		return nil, ErrNotFound
	}

	results, err := c.search(ctx, clean)
	if err != nil {
		return nil, err
	}

	stripped := stripSuffixes(clean)
	if len(results) == 0 && stripped != clean && stripped != "" {
		slog.Debug("geocoding retry without suffix", "query", clean, "retry", stripped)
		if results, err = c.search(ctx, stripped); err != nil {
			return nil, err
		}
	}

	if len(results) == 0 {
		if name, ok := c.synonyms.Lookup(stripped); ok && name != clean {
			slog.Debug("geocoding retry with synonym", "query", clean, "retry", name)
			if results, err = c.search(ctx, name); err != nil {
				return nil, err
			}
		}
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	top := results[0]
	coords, err := parseCoordinates(top.Lat, top.Lon)
	if err != nil {
		return nil, err
	}
	a := top.Address
	return &ForwardResult{
		Coordinates: coords,
		Name:        firstNonEmpty(a.City, a.Town, a.Village, a.Island, a.State, a.Country, clean),
		Country:     a.Country,
		DisplayName: top.DisplayName,
	}, nil
}

// Reverse resolves coordinates to the surrounding city and country.
func (c *Client) Reverse(ctx context.Context, at models.Coordinates) (*ReverseResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("zoom", "10")
	params.Set("accept-language", "en")

	var p place
	if err := c.get(ctx, "/reverse", params, &p); err != nil {
		return nil, err
	}
	a := p.Address
	city := firstNonEmpty(a.City, a.Town, a.Village, a.Municipality, a.Island, a.State)
	if city == "" && a.Country == "" {
		return nil, ErrNotFound
	}

	country := c.synonyms.Canonical(a.Country)
	city = c.synonyms.Canonical(city)
	if city == "" {
		city = country
	}
	return &ReverseResult{FullAddress: p.DisplayName, City: city, Country: country}, nil
}

// search runs one forward pass with retries. Exhausted retries yield no
// results rather than an error so later passes still run.
func (c *Client) search(ctx context.Context, q string) ([]place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", q)
	params.Set("limit", "3")
	params.Set("addressdetails", "1")

	var results []place
	if err := c.get(ctx, "/search", params, &results); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("geocoding search failed", "query", q, "error", err)
		return nil, nil
	}
	return results, nil
}

// get performs a GET with up to maxAttempts tries, backing off linearly.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt-1)):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		lastErr = c.do(ctx, endpoint, out)
		if lastErr == nil {
			return nil
		}
		slog.Debug("geocoding request failed", "attempt", attempt, "error", lastErr)
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}

func stripSuffixes(q string) string {
	for _, s := range retrySuffixes {
		if strings.HasSuffix(q, s) {
			q = strings.TrimSpace(strings.TrimSuffix(q, s))
		}
	}
	return q
}

func parseCoordinates(lat, lon string) (models.Coordinates, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	return models.Coordinates{Lat: la, Lng: lo}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
