// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/proxity/danjiscout/internal/ingest"
	"github.com/proxity/danjiscout/internal/logging"
	"github.com/proxity/danjiscout/internal/metrics"
	"github.com/proxity/danjiscout/internal/models"
	"github.com/proxity/danjiscout/internal/recommend"
	"github.com/proxity/danjiscout/internal/validation"
)

// maxRequestBody bounds the recommendation request payload.
const maxRequestBody = 64 << 10 // 64KB

// Handler carries the dependencies of every endpoint.
type Handler struct {
	engine *recommend.Engine
	store  *ingest.Store
}

// NewHandler creates the endpoint handler set.
func NewHandler(engine *recommend.Engine, store *ingest.Store) *Handler {
	return &Handler{engine: engine, store: store}
}

// recommendationRequest is the wire form of one recommendation request.
// Category fields accept "" or "any" as the wildcard.
type recommendationRequest struct {
	Cash         float64  `json:"cash" validate:"gte=0"`
	Loan         float64  `json:"loan" validate:"gte=0"`
	AreaBand     string   `json:"area_band"`
	Condition    string   `json:"condition" validate:"omitempty,oneof=any new existing remodeled reconstruction"`
	Lines        []string `json:"lines"`
	SizeCategory string   `json:"size_category"`
	Limit        int      `json:"limit" validate:"omitempty,min=1,max=10"`
}

// toEngineRequest converts the DTO to the engine's request type.
func (req *recommendationRequest) toEngineRequest(requestID string) recommend.Request {
	lines := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l != "" && l != "any" {
			lines = append(lines, l)
		}
	}

	return recommend.Request{
		Preference: recommend.Preference{
			Cash:         req.Cash,
			Loan:         req.Loan,
			AreaBand:     parsePref(req.AreaBand),
			Condition:    parsePref(req.Condition),
			Lines:        recommend.Lines(lines...),
			SizeCategory: parsePref(req.SizeCategory),
		},
		Limit:     req.Limit,
		RequestID: requestID,
	}
}

func parsePref(s string) recommend.Pref {
	if s == "" || s == "any" {
		return recommend.Any()
	}
	return recommend.Exact(s)
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Request body is not valid JSON: "+err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return
	}

	engineReq := req.toEngineRequest(w.Header().Get(requestIDHeader))
	resp, err := h.engine.Recommend(r.Context(), engineReq)
	if err != nil {
		if errors.Is(err, ingest.ErrCatalogUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
				"No catalog snapshot is loaded yet", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Recommendation failed", err)
		return
	}
	metrics.RecordRecommendation(resp.Status, resp.TiersUsed, time.Since(start))

	logging.Ctx(r.Context()).Debug().
		Str("status", resp.Status).
		Int("results", len(resp.Results)).
		Int("tiers_used", resp.TiersUsed).
		Msg("recommendation served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: resp.Metadata.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
		},
	})
}

// RecommendConfig handles GET /api/v1/recommendations/config.
func (h *Handler) RecommendConfig(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.GetConfig(),
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// catalogStats is the GET /api/v1/catalog/stats payload.
type catalogStats struct {
	ingest.Stats
	Engine recommend.EngineMetrics `json:"engine"`
}

// CatalogStats handles GET /api/v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, _ *http.Request) {
	if !h.store.Loaded() {
		respondError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
			"No catalog snapshot is loaded yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: catalogStats{
			Stats:  h.store.Stats(),
			Engine: h.engine.Metrics(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /healthz. Always healthy while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"state": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /readyz. Ready once a catalog snapshot exists.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if !h.store.Loaded() {
		respondError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
			"Catalog not loaded", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"state": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
