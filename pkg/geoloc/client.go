// Package geoloc resolves the caller's current position to a single
// latitude/longitude fix via an IP geolocation service.
package geoloc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultEndpoint = "http://ip-api.com/json"

// FailureCategory classifies why a fix could not be obtained.
type FailureCategory string

const (
	PermissionDenied FailureCategory = "permission-denied"
	Unavailable      FailureCategory = "unavailable"
	Timeout          FailureCategory = "timeout"
)

// Error is a categorized geolocation failure with a human-readable cause.
type Error struct {
	Category FailureCategory
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("geoloc: %s", e.Category)
	}
	return fmt.Sprintf("geoloc: %s: %v", e.Category, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fix is one resolved position.
type Fix struct {
	Latitude  float64
	Longitude float64
}

// Locator yields the caller's current position.
type Locator interface {
	Locate(ctx context.Context) (*Fix, error)
}

// Option configures the locator.
type Option func(*httpLocator)

// WithEndpoint overrides the geolocation service URL.
func WithEndpoint(u string) Option {
	return func(l *httpLocator) {
		l.endpoint = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *httpLocator) {
		l.http = hc
	}
}

type httpLocator struct {
	endpoint string
	http     *http.Client
}

// New creates an IP-based Locator.
func New(opts ...Option) Locator {
	l := &httpLocator{
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l *httpLocator) Locate(ctx context.Context) (*Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, &Error{Category: Unavailable, Cause: err}
	}

	resp, err := l.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Category: Timeout, Cause: err}
		}
		return nil, &Error{Category: Unavailable, Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return nil, &Error{Category: PermissionDenied, Cause: eris.Errorf("service returned status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Category: Unavailable, Cause: eris.Errorf("service returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Category: Unavailable, Cause: err}
	}

	var parsed ipAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Category: Unavailable, Cause: eris.Wrap(err, "parse response")}
	}
	if parsed.Status != "success" && parsed.Status != "" {
		return nil, &Error{Category: Unavailable, Cause: eris.New(parsed.Message)}
	}

	return &Fix{Latitude: parsed.Lat, Longitude: parsed.Lon}, nil
}
