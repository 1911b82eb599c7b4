// Package imagesearch queries the Unsplash photo search API.
package imagesearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"days/internal/metrics"
	"days/internal/models"
	"days/internal/validation"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	perPage        = 30
	breakerName    = "unsplash"
)

// ErrNoCredentials is returned when no access key is configured.
var ErrNoCredentials = errors.New("unsplash access key not configured")

// Config configures a Client.
type Config struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

// Client searches photos. Calls go through a circuit breaker so a failing
// upstream is skipped quickly and the gallery falls back instead of waiting.
type Client struct {
	baseURL   string
	accessKey string
	http      *http.Client
	cb        *gobreaker.CircuitBreaker[[]models.Image]
}

// New creates an Unsplash client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	metrics.SetBreakerState(breakerName, int(gobreaker.StateClosed))
	cb := gobreaker.NewCircuitBreaker[[]models.Image](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.SetBreakerState(name, int(to))
		},
	})

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		http:      &http.Client{Timeout: cfg.Timeout},
		cb:        cb,
	}
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	ID             string           `json:"id"`
	Description    string           `json:"description"`
	AltDescription string           `json:"alt_description"`
	URLs           models.ImageURLs `json:"urls"`
	User           struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

// Search returns up to 30 photos for query, most relevant first. An empty
// slice means the search worked but found nothing.
func (c *Client) Search(ctx context.Context, query string) ([]models.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if c.accessKey == "" {
		return nil, ErrNoCredentials
	}

	return c.cb.Execute(func() ([]models.Image, error) {
		return c.search(ctx, query)
	})
}

func (c *Client) search(ctx context.Context, query string) ([]models.Image, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("query", query)
	params.Set("per_page", fmt.Sprint(perPage))
	params.Set("order_by", "relevant")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode unsplash response: %w", err)
	}

	images := make([]models.Image, 0, len(body.Results))
	for _, p := range body.Results {
		img := models.Image{
			ID:          p.ID,
			URLs:        p.URLs,
			Description: p.Description,
			Attribution: models.Attribution{
				Name:       p.User.Name,
				Username:   p.User.Username,
				ProfileURL: p.User.Links.HTML,
			},
		}
		if img.Description == "" {
			img.Description = p.AltDescription
		}
		if ok, _ := validation.ValidateImageURL(img.URLs.Regular); !ok {
			slog.Debug("dropping image with unusable url", "id", p.ID, "query", query)
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
