// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

// Package config loads the application configuration through three
// layers with rising priority: struct defaults, an optional YAML file,
// and environment variables. Only explicitly mapped environment
// variables are honored, so unrelated process environment never leaks
// into the configuration.
package config
