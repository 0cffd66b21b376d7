// Package places is a client for the Google Places text-search and details
// endpoints. Requests can be routed through a same-origin relay
// (GET /api/proxy?url=...) instead of hitting the provider directly.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailsFields is the field mask requested from the details endpoint.
const detailsFields = "name,formatted_address,formatted_phone_number,website,rating,types,user_ratings_total"

// Provider status codes the orchestrator cares about.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// Client performs place searches and detail lookups.
type Client interface {
	TextSearch(ctx context.Context, req TextSearchRequest) (*SearchResponse, error)
	Details(ctx context.Context, placeID string) (*Details, error)
}

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// TextSearchRequest describes one text search. When Location is set the
// search is centered on that point with the given radius.
type TextSearchRequest struct {
	Query        string
	Location     *LatLng
	RadiusMeters int
}

// SearchResponse is the provider's text-search envelope.
type SearchResponse struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []Result `json:"results"`
}

// Result is a place stub from a text search.
type Result struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating,omitempty"`
	Types            []string `json:"types,omitempty"`
}

// Details is the extended record from the details endpoint.
type Details struct {
	PlaceID              string   `json:"place_id"`
	Name                 string   `json:"name"`
	FormattedAddress     string   `json:"formatted_address"`
	FormattedPhoneNumber string   `json:"formatted_phone_number,omitempty"`
	Website              string   `json:"website,omitempty"`
	Rating               *float64 `json:"rating,omitempty"`
	Types                []string `json:"types,omitempty"`
	UserRatingsTotal     int      `json:"user_ratings_total"`
}

type detailsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Result       Details `json:"result"`
}

// StatusError reports a non-OK provider status on a details lookup.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places: provider status %s", e.Status)
	}
	return fmt.Sprintf("places: provider status %s: %s", e.Status, e.Message)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithProxyURL routes every request through a relay endpoint that takes the
// target URL as its "url" query parameter.
func WithProxyURL(u string) Option {
	return func(c *httpClient) {
		c.proxyURL = u
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type httpClient struct {
	apiKey   string
	baseURL  string
	proxyURL string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(10, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) TextSearch(ctx context.Context, req TextSearchRequest) (*SearchResponse, error) {
	params := url.Values{
		"query": {req.Query},
		"key":   {c.apiKey},
	}
	if req.Location != nil {
		params.Set("location", fmt.Sprintf("%g,%g", req.Location.Lat, req.Location.Lng))
	}
	if req.RadiusMeters > 0 {
		params.Set("radius", fmt.Sprintf("%d", req.RadiusMeters))
	}

	body, err := c.get(ctx, c.baseURL+"/textsearch/json?"+params.Encode())
	if err != nil {
		return nil, eris.Wrap(err, "places: text search")
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal search response")
	}
	return &result, nil
}

func (c *httpClient) Details(ctx context.Context, placeID string) (*Details, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
		"key":      {c.apiKey},
	}

	body, err := c.get(ctx, c.baseURL+"/details/json?"+params.Encode())
	if err != nil {
		return nil, eris.Wrap(err, "places: details")
	}

	var result detailsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal details response")
	}
	if result.Status != StatusOK {
		return nil, &StatusError{Status: result.Status, Message: result.ErrorMessage}
	}

	d := result.Result
	d.PlaceID = placeID
	return &d, nil
}

// get issues a rate-limited GET, routing through the relay when configured.
func (c *httpClient) get(ctx context.Context, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	reqURL := target
	if c.proxyURL != "" {
		reqURL = c.proxyURL + "?url=" + url.QueryEscape(target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
