// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative recency years", func(c *Config) { c.Price.RecencyYears = -1 }},
		{"zero extrapolation premium", func(c *Config) { c.Price.ExtrapolationPremium = 0 }},
		{"flex pct above one", func(c *Config) { c.Budget.FlexPct = 1.5 }},
		{"cap multiplier below one", func(c *Config) { c.Budget.CapMultiplier = 0.9 }},
		{"tiers narrow instead of widen", func(c *Config) {
			c.Tiers = []TierConfig{{BudgetMultiplier: 1.3}, {BudgetMultiplier: 1.15}}
		}},
		{"tier exceeds the absolute cap", func(c *Config) {
			c.Tiers = []TierConfig{{BudgetMultiplier: 2.0}}
		}},
		{"negative award", func(c *Config) { c.Awards.AreaMatch = -1 }},
		{"correlation not below primary", func(c *Config) { c.Correlation.AreaBand = 1.5 }},
		{"duplicate area band name", func(c *Config) {
			c.AreaBands = append(c.AreaBands, AreaBandConfig{Name: Band20s, MinPyeong: 50})
		}},
		{"empty area band range", func(c *Config) {
			c.AreaBands = []AreaBandConfig{{Name: "x", MinPyeong: 30, MaxPyeong: 30}}
		}},
		{"no size bands", func(c *Config) { c.SizeBands = nil }},
		{"zero normalization weights", func(c *Config) {
			c.Normalization = NormalizationConfig{}
		}},
		{"unknown ranking mode", func(c *Config) { c.Ranking.Mode = "random" }},
		{"zero target count", func(c *Config) { c.Limits.TargetCount = 0 }},
		{"max limit below target", func(c *Config) { c.Limits.MaxLimit = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	original := DefaultConfig()
	clone := original.Clone()

	clone.Budget.FlexCap = 99
	clone.Tiers[0].BudgetMultiplier = 99
	clone.AreaBands[0].Name = "mutated"

	if original.Budget.FlexCap == 99 {
		t.Error("clone shares the budget struct")
	}
	if original.Tiers[0].BudgetMultiplier == 99 {
		t.Error("clone shares the tiers slice")
	}
	if original.AreaBands[0].Name == "mutated" {
		t.Error("clone shares the area bands slice")
	}
}

func TestAreaBandContains(t *testing.T) {
	t.Parallel()

	band := AreaBandConfig{Name: Band20s, MinPyeong: 20, MaxPyeong: 30}
	open := AreaBandConfig{Name: Band40Plus, MinPyeong: 40}

	tests := []struct {
		band   AreaBandConfig
		pyeong float64
		want   bool
	}{
		{band, 20, true},  // lower bound inclusive
		{band, 29.9, true},
		{band, 30, false}, // upper bound exclusive
		{band, 19.9, false},
		{open, 40, true},
		{open, 400, true}, // unbounded above
		{open, 39.9, false},
	}
	for _, tt := range tests {
		if got := tt.band.Contains(tt.pyeong); got != tt.want {
			t.Errorf("%s.Contains(%g) = %v, want %v", tt.band.Name, tt.pyeong, got, tt.want)
		}
	}
}

func TestSizeBandOf(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := []struct {
		units    int
		wantName string
		wantOK   bool
	}{
		{2400, SizeLarge, true},
		{1000, SizeLarge, true},
		{999, SizeSmallMid, true},
		{300, SizeSmallMid, true},
		{299, SizeSmall, true},
		{1, SizeSmall, true},
		{0, "", false}, // unknown belongs to no band
	}
	for _, tt := range tests {
		name, ok := cfg.sizeBandOf(tt.units)
		if ok != tt.wantOK || name != tt.wantName {
			t.Errorf("sizeBandOf(%d) = %q, %v; want %q, %v", tt.units, name, ok, tt.wantName, tt.wantOK)
		}
	}
}

func TestPyeongDerivation(t *testing.T) {
	t.Parallel()

	l := Listing{FloorArea: 84}
	want := 84.0 / 3.3
	if got := l.Pyeong(); !almostEqual(got, want) {
		t.Errorf("Pyeong() = %g, want %g", got, want)
	}
}
