// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package models holds the shared wire types of the HTTP API.
package models

import "time"

// APIResponse is the uniform envelope of every API endpoint.
//
//	{
//	  "status": "success",
//	  "data": { ... },
//	  "metadata": { "timestamp": "...", "request_id": "..." }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	LatencyMS int64     `json:"latency_ms,omitempty"`
}

// APIError is the structured error payload.
//
// Error codes used by this service:
//   - VALIDATION_ERROR: invalid request parameters
//   - CATALOG_UNAVAILABLE: no catalog snapshot is loaded
//   - NOT_FOUND: unknown route or resource
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
