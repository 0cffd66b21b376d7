// Package search turns a query/location/radius into a batch of scored leads.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
	"github.com/lead-mapper/leadmapper-cli/internal/normalize"
	"github.com/lead-mapper/leadmapper-cli/pkg/places"
)

const defaultDetailConcurrency = 5

// ValidationError reports a missing or invalid search parameter. The search
// is not attempted.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("search: invalid %s: %s", e.Field, e.Msg)
}

// ProviderError reports a non-success status from the search call. The whole
// batch is aborted.
type ProviderError struct {
	Status  string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search: provider returned %s", e.Status)
	}
	return fmt.Sprintf("search: provider returned %s: %s", e.Status, e.Message)
}

// Orchestrator issues a text search, then fetches details per result and
// assembles the lead batch.
type Orchestrator struct {
	client            places.Client
	detailConcurrency int
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithDetailConcurrency caps concurrent detail fetches per batch.
func WithDetailConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.detailConcurrency = n
		}
	}
}

// New creates an Orchestrator backed by the given places client.
func New(client places.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:            client,
		detailConcurrency: defaultDetailConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search runs one search and returns the assembled leads in provider result
// order. A failed detail fetch degrades that item to the fixed fallback lead
// instead of aborting the batch; only a non-success search status aborts.
func (o *Orchestrator) Search(ctx context.Context, params model.SearchParams) ([]model.Lead, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	req := places.TextSearchRequest{
		Query:        params.Query,
		RadiusMeters: params.RadiusMeters(),
	}
	if lat, lng, ok := params.Coordinates(); ok {
		req.Location = &places.LatLng{Lat: lat, Lng: lng}
	} else {
		req.Query = fmt.Sprintf("%s in %s", params.Query, params.Location)
	}

	resp, err := o.client.TextSearch(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status != places.StatusOK && resp.Status != places.StatusZeroResults {
		return nil, &ProviderError{Status: resp.Status, Message: resp.ErrorMessage}
	}

	leads := make([]model.Lead, len(resp.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.detailConcurrency)

	for i, stub := range resp.Results {
		i, stub := i, stub
		g.Go(func() error {
			det, err := o.client.Details(gctx, stub.PlaceID)
			if err != nil {
				// Per-item failure: degrade, keep going.
				zap.L().Warn("search: detail fetch failed, using fallback",
					zap.String("place_id", stub.PlaceID),
					zap.String("name", stub.Name),
					zap.Error(err),
				)
				leads[i] = normalize.FallbackLead(stub)
				return nil
			}
			leads[i] = normalize.Lead(stub, det)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("search: batch assembled",
		zap.String("query", params.Query),
		zap.String("location", params.Location),
		zap.Int("leads", len(leads)),
	)
	return leads, nil
}

func validate(params model.SearchParams) error {
	if params.Query == "" {
		return &ValidationError{Field: "query", Msg: "required"}
	}
	if params.Location == "" {
		return &ValidationError{Field: "location", Msg: "required"}
	}
	if !params.ValidRadius() {
		return &ValidationError{Field: "radius", Msg: fmt.Sprintf("must be one of %v km", model.AllowedRadii)}
	}
	return nil
}
