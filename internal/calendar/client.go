// Package calendar fetches the scripture readings for a given date from a
// liturgical calendar API. Every failure path substitutes a built-in
// example reading set: the editor never surfaces a fetch error to the
// user.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultBaseURL is the public readings endpoint; the date and zone
	// path segments are appended per request.
	DefaultBaseURL = "https://api.aelf.org/v1/messes"
	// DefaultZone selects the calendar variant.
	DefaultZone = "france"

	defaultTimeout  = 15 * time.Second
	defaultCacheTTL = 6 * time.Hour
)

// Reading is one fetched passage, already cleaned of markup.
type Reading struct {
	Type      string `json:"type"` // "first_reading", "psalm", "second_reading", "gospel"
	Title     string `json:"title"`
	Reference string `json:"reference"`
	Body      string `json:"body"`
}

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Zone       string
	Timeout    time.Duration
	CacheTTL   time.Duration
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// Client fetches and caches daily readings.
type Client struct {
	baseURL string
	zone    string
	client  *http.Client
	cache   *gocache.Cache
	logger  *slog.Logger
}

// New creates a readings client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Zone == "" {
		cfg.Zone = DefaultZone
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		zone:    cfg.Zone,
		client:  httpClient,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:  cfg.Logger,
	}
}

// ReadingsFor returns the readings for the given date. The result is
// cached per date; on any upstream failure the built-in example set is
// returned instead, never an error.
func (c *Client) ReadingsFor(ctx context.Context, date time.Time) []Reading {
	key := date.Format("2006-01-02")
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Reading)
	}

	readings, err := c.fetch(ctx, key)
	if err != nil {
		c.logger.Warn("readings fetch failed, using example set", "date", key, "error", err)
		return ExampleReadings()
	}
	if len(readings) == 0 {
		c.logger.Warn("readings fetch returned nothing, using example set", "date", key)
		return ExampleReadings()
	}

	c.cache.SetDefault(key, readings)
	return readings
}

// apiResponse mirrors the upstream JSON shape: one field per reading
// type, each with a reference and HTML-tagged text.
type apiResponse struct {
	FirstReading  *apiReading `json:"lecture_1"`
	Psalm         *apiReading `json:"psaume"`
	SecondReading *apiReading `json:"lecture_2"`
	Gospel        *apiReading `json:"evangile"`
}

type apiReading struct {
	Title     string `json:"titre"`
	Reference string `json:"reference"`
	Text      string `json:"texte"`
}

func (c *Client) fetch(ctx context.Context, date string) ([]Reading, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, date, c.zone)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var readings []Reading
	add := func(kind, defaultTitle string, r *apiReading) {
		if r == nil || r.Text == "" {
			return
		}
		title := r.Title
		if title == "" {
			title = defaultTitle
		}
		readings = append(readings, Reading{
			Type:      kind,
			Title:     title,
			Reference: CleanText(r.Reference),
			Body:      CleanText(r.Text),
		})
	}
	add("first_reading", "Première lecture", parsed.FirstReading)
	add("psalm", "Psaume", parsed.Psalm)
	add("second_reading", "Deuxième lecture", parsed.SecondReading)
	add("gospel", "Évangile", parsed.Gospel)

	return readings, nil
}
