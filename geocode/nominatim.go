// Package geocode locates birth places the built-in gazetteer does not know.
//
// A Client queries OpenStreetMap Nominatim for coordinates and a country
// code; a Service turns the result into an IANA zone and caches it in the
// BoltDB store so each place is geocoded once.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the public Nominatim search endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultUserAgent identifies the service to Nominatim, which rejects
// anonymous clients.
const DefaultUserAgent = "BAZI Destiny/1.0 (https://github.com/charleschoi123/bazi-destiny)"

// minInterval spaces requests to the public endpoint (one per second).
const minInterval = time.Second

// ErrNotFound is returned when the geocoder has no match for a place.
var ErrNotFound = errors.New("place not found")

// Place is one geocoding match.
type Place struct {
	Lat         float64
	Lon         float64
	CountryCode string // ISO 3166-1 alpha-2, upper case
	Display     string
}

// Searcher finds coordinates for a city and country.
type Searcher interface {
	Search(ctx context.Context, city, country string) (Place, error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another Nominatim instance.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithMinInterval changes the spacing between requests; 0 disables it.
func WithMinInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.minInterval = d }
}

// Client is a Nominatim search client. It is safe for concurrent use and
// serializes requests at most one per minInterval.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient returns a client for the public Nominatim endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
		minInterval: minInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Search returns the best match for city in country.
func (c *Client) Search(ctx context.Context, city, country string) (Place, error) {
	if err := c.wait(ctx); err != nil {
		return Place{}, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "5")
	q.Set("city", city)
	q.Set("country", country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Place{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("geocode request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Place{}, fmt.Errorf("failed to parse response: %w", err)
	}
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		return Place{
			Lat:         lat,
			Lon:         lon,
			CountryCode: strings.ToUpper(r.Address.CountryCode),
			Display:     r.DisplayName,
		}, nil
	}
	return Place{}, fmt.Errorf("%w: %s, %s", ErrNotFound, city, country)
}

func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.minInterval > 0 {
		if d := c.minInterval - time.Since(c.lastRequest); d > 0 {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
