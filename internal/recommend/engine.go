// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoProvider means Recommend was called before a catalog provider
// was attached.
var ErrNoProvider = errors.New("catalog provider not set")

// CatalogProvider supplies the raw record set for a request. Implemented
// by the ingest package; the engine never retains or mutates the
// returned slice beyond the request.
type CatalogProvider interface {
	// Catalog returns the listing snapshot for one request.
	Catalog(ctx context.Context) ([]Listing, error)
}

// Engine runs the recommendation pipeline. It is safe for concurrent
// use: config and provider are fixed after construction and every
// request builds its own derived views.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider CatalogProvider

	// now is injectable for deterministic recency-window tests.
	now func() time.Time

	requests     atomic.Int64
	fullResults  atomic.Int64
	partials     atomic.Int64
	empties      atomic.Int64
	tierAdvances atomic.Int64
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// SetCatalogProvider attaches the catalog source.
func (e *Engine) SetCatalogProvider(p CatalogProvider) {
	e.provider = p
}

// Ready reports whether the engine can serve requests.
func (e *Engine) Ready() bool {
	return e.provider != nil
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// Metrics returns a snapshot of the request counters.
func (e *Engine) Metrics() EngineMetrics {
	return EngineMetrics{
		Requests:       e.requests.Load(),
		FullResults:    e.fullResults.Load(),
		PartialResults: e.partials.Load(),
		EmptyResults:   e.empties.Load(),
		TierAdvances:   e.tierAdvances.Load(),
	}
}

// Recommend runs the full pipeline for one request: price resolution,
// tiered eligibility and scoring, ranking with dedup, and explanation.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	e.requests.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Float64("total_budget", req.Preference.TotalBudget()).
		Logger()
	logger.Debug().
		Str("area_band", req.Preference.AreaBand.String()).
		Str("condition", req.Preference.Condition.String()).
		Str("size_category", req.Preference.SizeCategory.String()).
		Strs("lines", req.Preference.Lines.Values()).
		Msg("processing recommendation request")

	if e.provider == nil {
		return nil, ErrNoProvider
	}
	catalog, err := e.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	resolved := resolvePrices(&e.config.Price, start, catalog)
	scoreAll(e.config, req.Preference, resolved)

	outcome := runFallback(e.config, req.Preference, resolved, req.Limit)
	if outcome.tiersUsed > 1 {
		e.tierAdvances.Add(int64(outcome.tiersUsed - 1))
	}

	selected := rankAndDedup(e.config, req.Preference, outcome.merged, req.Limit)
	results := buildResults(e.config, req.Preference, selected)

	resp := &Response{
		Results:         results,
		Status:          outcome.status.String(),
		Banner:          chooseBanner(results).String(),
		TotalCandidates: len(resolved),
		TiersUsed:       outcome.tiersUsed,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: e.now(),
		},
	}
	e.countStatus(outcome.status)

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(results)).
		Int("tiers_used", resp.TiersUsed).
		Str("status", resp.Status).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies the limit defaults and generates a request ID
// when the caller did not supply one.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Limit <= 0 {
		req.Limit = e.config.Limits.TargetCount
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}
	return req
}

// countStatus bumps the per-status counter.
func (e *Engine) countStatus(s Status) {
	switch s {
	case StatusFull:
		e.fullResults.Add(1)
	case StatusPartial:
		e.partials.Add(1)
	default:
		e.empties.Add(1)
	}
}
