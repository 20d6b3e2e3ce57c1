// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"math"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

func dptr(t time.Time) *time.Time { return &t }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func TestResolvePricePrecedence(t *testing.T) {
	t.Parallel()

	recent := dptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	stale := dptr(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name       string
		listing    Listing
		wantPrice  float64
		wantOrigin PriceOrigin
		wantOK     bool
	}{
		{
			name: "recent transaction wins over listing price",
			listing: Listing{
				ComplexID: "a", FloorArea: 84,
				TransactionPrice: fptr(27), TransactionDate: recent,
				ListingPrice:   fptr(30),
				EstimatedPrice: fptr(28),
			},
			wantPrice: 27, wantOrigin: OriginTransaction, wantOK: true,
		},
		{
			name: "stale transaction falls through to listing price",
			listing: Listing{
				ComplexID: "a", FloorArea: 84,
				TransactionPrice: fptr(27), TransactionDate: stale,
				ListingPrice: fptr(30),
			},
			wantPrice: 30, wantOrigin: OriginListing, wantOK: true,
		},
		{
			name: "transaction without date falls through",
			listing: Listing{
				ComplexID: "a", FloorArea: 84,
				TransactionPrice: fptr(27),
				ListingPrice:     fptr(30),
			},
			wantPrice: 30, wantOrigin: OriginListing, wantOK: true,
		},
		{
			name: "estimate is the last resort",
			listing: Listing{
				ComplexID: "solo", FloorArea: 84,
				EstimatedPrice: fptr(28),
			},
			wantPrice: 28, wantOrigin: OriginEstimated, wantOK: true,
		},
		{
			name:    "no signal at all excludes the listing",
			listing: Listing{ComplexID: "solo", FloorArea: 84},
			wantOK:  false,
		},
	}

	cfg := &DefaultConfig().Price
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := []Listing{tt.listing}
			price, origin, ok := resolvePrice(cfg, testNow, catalog, 0, indexListingPrices(catalog))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !almostEqual(price, tt.wantPrice) {
				t.Errorf("price = %g, want %g", price, tt.wantPrice)
			}
			if origin != tt.wantOrigin {
				t.Errorf("origin = %s, want %s", origin, tt.wantOrigin)
			}
		})
	}
}

func TestTransactionRecent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"current year", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"previous calendar year", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"two calendar years back", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"future date", testNow.Add(24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := transactionRecent(1, testNow, tt.date); got != tt.want {
				t.Errorf("transactionRecent(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestExtrapolateFromNearestUnit(t *testing.T) {
	t.Parallel()

	// The 112sqm unit has no price of its own; the 84sqm sibling's asking
	// price scales by area ratio and the premium: 25/84*112*1.05 = 35.
	catalog := []Listing{
		{ComplexID: "a", FloorArea: 84, ListingPrice: fptr(25)},
		{ComplexID: "a", FloorArea: 112},
	}

	cfg := &PriceConfig{RecencyYears: 1, ExtrapolationPremium: 1.05}
	resolved := resolvePrices(cfg, testNow, catalog)
	if len(resolved) != 2 {
		t.Fatalf("resolved %d listings, want 2", len(resolved))
	}

	got := resolved[1]
	if got.PriceOrigin != OriginExtrapolated {
		t.Errorf("origin = %s, want extrapolated", got.PriceOrigin)
	}
	want := 25.0 / 84 * 112 * 1.05
	if !almostEqual(got.ResolvedPrice, want) {
		t.Errorf("price = %g, want %g", got.ResolvedPrice, want)
	}
}

func TestExtrapolatePicksClosestArea(t *testing.T) {
	t.Parallel()

	catalog := []Listing{
		{ComplexID: "a", FloorArea: 59, ListingPrice: fptr(18)},
		{ComplexID: "a", FloorArea: 114, ListingPrice: fptr(40)},
		{ComplexID: "a", FloorArea: 112},
	}

	cfg := &PriceConfig{ExtrapolationPremium: 1.05}
	price, ok := extrapolate(cfg, catalog, 2, indexListingPrices(catalog))
	if !ok {
		t.Fatal("extrapolate failed, want success")
	}
	want := 40.0 / 114 * 112 * 1.05
	if !almostEqual(price, want) {
		t.Errorf("price = %g, want %g (donor must be the 114sqm unit)", price, want)
	}
}

func TestExtrapolateTieBreaksToEarlierRecord(t *testing.T) {
	t.Parallel()

	// Both donors are 10sqm away; the earlier catalog record wins so the
	// resolution is deterministic.
	catalog := []Listing{
		{ComplexID: "a", FloorArea: 74, ListingPrice: fptr(20)},
		{ComplexID: "a", FloorArea: 94, ListingPrice: fptr(30)},
		{ComplexID: "a", FloorArea: 84},
	}

	cfg := &PriceConfig{ExtrapolationPremium: 1.0}
	price, ok := extrapolate(cfg, catalog, 2, indexListingPrices(catalog))
	if !ok {
		t.Fatal("extrapolate failed, want success")
	}
	want := 20.0 / 74 * 84
	if !almostEqual(price, want) {
		t.Errorf("price = %g, want %g (earlier record must win the tie)", price, want)
	}
}

func TestExtrapolateRequiresSameComplexDonor(t *testing.T) {
	t.Parallel()

	catalog := []Listing{
		{ComplexID: "b", FloorArea: 84, ListingPrice: fptr(25)},
		{ComplexID: "a", FloorArea: 84},
	}

	cfg := &PriceConfig{ExtrapolationPremium: 1.05}
	if _, ok := extrapolate(cfg, catalog, 1, indexListingPrices(catalog)); ok {
		t.Error("extrapolate succeeded across complexes, want failure")
	}
}

func TestResolvePricesPreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	catalog := []Listing{
		{ComplexID: "a", FloorArea: 84, ListingPrice: fptr(25)},
		{ComplexID: "b", FloorArea: 59},
		{ComplexID: "c", FloorArea: 101, EstimatedPrice: fptr(31)},
	}

	cfg := &DefaultConfig().Price
	resolved := resolvePrices(cfg, testNow, catalog)
	if len(resolved) != 2 {
		t.Fatalf("resolved %d listings, want 2 (unresolvable dropped)", len(resolved))
	}
	if resolved[0].ComplexID != "a" || resolved[1].ComplexID != "c" {
		t.Errorf("order = %s, %s; want a, c", resolved[0].ComplexID, resolved[1].ComplexID)
	}
	if catalog[1].ListingPrice != nil || catalog[1].EstimatedPrice != nil {
		t.Error("input catalog was mutated")
	}
}
