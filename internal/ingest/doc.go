// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package ingest loads the listing catalog from prepared CSV exports and
// serves immutable snapshots to the recommendation engine.
//
// The loader is deliberately forgiving: malformed numeric and date cells
// become nulls rather than load failures, and sparse complex metadata
// (name, built year, unit count) is carried forward from the preceding
// record of the same complex, matching how the upstream spreadsheet
// repeats those values only on the first unit-type row.
//
// The Store satisfies the engine's catalog provider interface and hands
// out defensive copies, so a reload never mutates a request in flight.
package ingest
