// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Command server runs the recommendation HTTP service: it loads the
// configuration and the listing catalog, builds the engine, and serves
// the API until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/proxity/danjiscout/internal/api"
	"github.com/proxity/danjiscout/internal/config"
	"github.com/proxity/danjiscout/internal/ingest"
	"github.com/proxity/danjiscout/internal/logging"
	"github.com/proxity/danjiscout/internal/metrics"
	"github.com/proxity/danjiscout/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("address", cfg.Server.Address()).
		Str("catalog", cfg.Catalog.Path).
		Msg("starting danjiscout")

	store := ingest.NewStore(logging.Logger())
	if err := store.LoadCSV(cfg.Catalog.Path); err != nil {
		logging.Fatal().Err(err).Msg("failed to load catalog")
	}
	stats := store.Stats()
	metrics.SetCatalogSize(stats.Records, stats.Complexes)

	engine, err := recommend.NewEngine(&cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build recommendation engine")
	}
	engine.SetCatalogProvider(store)

	router := api.NewRouter(&cfg.Server, api.NewHandler(engine, store))
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("address", server.Addr).Msg("http server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	logging.Info().Msg("danjiscout stopped")
}
