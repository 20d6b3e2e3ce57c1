// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package metrics exposes the Prometheus instrumentation for the API
// surface, the recommendation pipeline, and the catalog store. All
// collectors register on the default registry and are served at
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts API requests by method, route, and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes per-route request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	// RecommendRequestsTotal counts recommendation runs by outcome status.
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by outcome status",
		},
		[]string{"status"}, // FULL, PARTIAL, EMPTY
	)

	// RecommendTiersUsed observes how many fallback tiers a request ran.
	RecommendTiersUsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_tiers_used",
			Help:    "Fallback tiers used per recommendation request",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	// RecommendDuration observes end-to-end pipeline latency.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CatalogRecords tracks the size of the loaded catalog snapshot.
	CatalogRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Listing records in the loaded catalog snapshot",
		},
	)

	// CatalogComplexes tracks the distinct complexes in the snapshot.
	CatalogComplexes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_complexes",
			Help: "Distinct complexes in the loaded catalog snapshot",
		},
	)
)

// RecordAPIRequest records one finished HTTP exchange.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one finished pipeline run.
func RecordRecommendation(status string, tiersUsed int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(status).Inc()
	RecommendTiersUsed.Observe(float64(tiersUsed))
	RecommendDuration.Observe(duration.Seconds())
}

// SetCatalogSize updates the catalog snapshot gauges.
func SetCatalogSize(records, complexes int) {
	CatalogRecords.Set(float64(records))
	CatalogComplexes.Set(float64(complexes))
}
