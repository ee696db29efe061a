// Package places wraps the Google Places API (New) surface the competitor
// pipeline depends on: nearby search around a subject and text search for
// anchored queries.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// candidateFieldMask limits responses to the fields the matching pipeline
// actually reads; anything wider costs more per request.
const candidateFieldMask = "places.id,places.displayName,places.primaryType,places.types," +
	"places.rating,places.userRatingCount,places.location,places.photos"

// Client performs Places API operations.
type Client interface {
	SearchNearby(ctx context.Context, center LatLng, radiusMeters float64, includedTypes []string) ([]Candidate, error)
	SearchText(ctx context.Context, query string, center *LatLng, radiusMeters float64) ([]Candidate, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default requests-per-second ceiling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchNearbyRequest struct {
	IncludedTypes       []string            `json:"includedTypes,omitempty"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

// SearchNearby returns up to 20 candidates around the given center.
func (c *httpClient) SearchNearby(ctx context.Context, center LatLng, radiusMeters float64, includedTypes []string) ([]Candidate, error) {
	payload := searchNearbyRequest{
		IncludedTypes:  includedTypes,
		MaxResultCount: 20,
		LocationRestriction: locationRestriction{
			Circle: circle{Center: center, Radius: radiusMeters},
		},
	}

	var result SearchNearbyResponse
	if err := c.post(ctx, "/places:searchNearby", payload, &result); err != nil {
		return nil, err
	}
	return candidates(result.Places), nil
}

type textSearchRequest struct {
	TextQuery    string        `json:"textQuery"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

// SearchText runs an anchored text query, optionally biased to a circle
// around the subject's location.
func (c *httpClient) SearchText(ctx context.Context, query string, center *LatLng, radiusMeters float64) ([]Candidate, error) {
	payload := textSearchRequest{TextQuery: query}
	if center != nil {
		payload.LocationBias = &locationBias{Circle: circle{Center: *center, Radius: radiusMeters}}
	}

	var result TextSearchResponse
	if err := c.post(ctx, "/places:searchText", payload, &result); err != nil {
		return nil, err
	}
	return candidates(result.Places), nil
}

func (c *httpClient) post(ctx context.Context, path string, payload, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "places: rate limit wait")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", candidateFieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return eris.Wrap(err, "places: unmarshal response")
	}
	return nil
}

func candidates(raw []place) []Candidate {
	out := make([]Candidate, len(raw))
	for i, p := range raw {
		out[i] = p.candidate()
	}
	return out
}
