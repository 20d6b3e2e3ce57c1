// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/proxity/danjiscout/internal/recommend"
)

// ErrCatalogUnavailable means no catalog has been loaded yet.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Stats describes the currently loaded catalog snapshot.
type Stats struct {
	Records   int       `json:"records"`
	Complexes int       `json:"complexes"`
	Dropped   int       `json:"dropped"`
	Source    string    `json:"source"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Store holds the loaded catalog and serves copies of it. It implements
// the engine's CatalogProvider interface and supports live reloads.
type Store struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	listings []recommend.Listing
	stats    Stats
}

// NewStore creates an empty catalog store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// LoadCSV reads a catalog file and replaces the current snapshot.
// The previous snapshot stays in place when loading fails.
func (s *Store) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	listings, dropped, err := parseCatalog(f, s.logger)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(listings) == 0 {
		return fmt.Errorf("catalog %s holds no usable records", path)
	}

	s.replace(listings, dropped, path)
	s.logger.Info().
		Str("source", path).
		Int("records", len(listings)).
		Int("complexes", countComplexes(listings)).
		Int("dropped", dropped).
		Msg("catalog loaded")
	return nil
}

// replace installs a new snapshot under the write lock.
func (s *Store) replace(listings []recommend.Listing, dropped int, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
	s.stats = Stats{
		Records:   len(listings),
		Complexes: countComplexes(listings),
		Dropped:   dropped,
		Source:    source,
		LoadedAt:  time.Now(),
	}
}

// Catalog returns a copy of the current snapshot.
func (s *Store) Catalog(ctx context.Context) ([]recommend.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats.LoadedAt.IsZero() {
		return nil, ErrCatalogUnavailable
	}

	out := make([]recommend.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

// Loaded reports whether a snapshot is available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stats.LoadedAt.IsZero()
}

// Stats returns the snapshot statistics.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func countComplexes(listings []recommend.Listing) int {
	seen := make(map[string]struct{}, len(listings))
	for i := range listings {
		seen[listings[i].ComplexID] = struct{}{}
	}
	return len(seen)
}
