// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package recommend implements the listing recommendation engine.
//
// # Pipeline
//
// Each request runs a bounded, synchronous pipeline over an in-memory
// catalog snapshot:
//
//	catalog + preference
//	  -> price resolution (transaction > listing > extrapolation > estimate)
//	  -> tier 0 eligibility (strict budget window + category filters)
//	  -> scoring (primary, correlation, pool-normalized)
//	  -> fallback tiers (budget bound widened until the target count is met)
//	  -> stable ranking + first-wins dedup by complex
//	  -> per-result match explanation
//
// # Design Principles
//
//   - Deterministic: identical catalog and preference produce identical
//     ordered output, run to run.
//   - Request-scoped: every derived view is built at request start and
//     discarded at request end. The engine holds no mutable cross-request
//     state beyond atomic counters, so one instance serves concurrent
//     requests without locking.
//   - Configurable: budget multipliers, the recency window, award weights,
//     tier list, and category bands all live in one Config threaded through
//     the pipeline. Nothing behavioral is hard-coded.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	engine.SetCatalogProvider(source)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Preference: pref,
//	    Limit:      3,
//	})
//
// This package has no dependencies on other internal packages. The
// CatalogProvider interface allows integration with the ingest package
// without creating circular imports.
package recommend
