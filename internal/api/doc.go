// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package api exposes the HTTP surface of the recommender on a chi
// router: the recommendation endpoint, engine configuration and catalog
// introspection, health probes, and the Prometheus scrape endpoint.
//
// Every response uses the models.APIResponse envelope. Validation
// failures map to 400 VALIDATION_ERROR, a missing catalog snapshot to
// 503 CATALOG_UNAVAILABLE, and an empty recommendation result is a
// successful 200 with status EMPTY, not an error.
package api
