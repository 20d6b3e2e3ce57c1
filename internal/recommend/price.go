// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"math"
	"time"
)

// resolvePrices derives one (price, origin) pair per listing and drops
// listings with no usable signal. Input records are never mutated; the
// result is a fresh slice of derived views preserving catalog order.
func resolvePrices(cfg *PriceConfig, now time.Time, catalog []Listing) []ResolvedListing {
	byComplex := indexListingPrices(catalog)

	resolved := make([]ResolvedListing, 0, len(catalog))
	for i := range catalog {
		price, origin, ok := resolvePrice(cfg, now, catalog, i, byComplex)
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedListing{
			Listing:       catalog[i],
			ResolvedPrice: price,
			PriceOrigin:   origin,
		})
	}
	return resolved
}

// indexListingPrices maps each complex to the catalog indices of its
// listings that carry an asking price, in catalog order.
func indexListingPrices(catalog []Listing) map[string][]int {
	idx := make(map[string][]int)
	for i := range catalog {
		if catalog[i].ListingPrice != nil {
			id := catalog[i].ComplexID
			idx[id] = append(idx[id], i)
		}
	}
	return idx
}

// resolvePrice walks the priority waterfall for the listing at index i.
// First satisfied signal wins:
//
//  1. transaction price, when dated inside the recency window
//  2. asking price
//  3. same-complex extrapolation from the nearest-area asking price
//  4. estimated valuation
//
// ok=false means no signal was usable and the listing must be excluded
// from all downstream stages.
func resolvePrice(cfg *PriceConfig, now time.Time, catalog []Listing, i int, byComplex map[string][]int) (float64, PriceOrigin, bool) {
	l := &catalog[i]

	if l.TransactionPrice != nil && l.TransactionDate != nil &&
		transactionRecent(cfg.RecencyYears, now, *l.TransactionDate) {
		return *l.TransactionPrice, OriginTransaction, true
	}

	if l.ListingPrice != nil {
		return *l.ListingPrice, OriginListing, true
	}

	if price, ok := extrapolate(cfg, catalog, i, byComplex); ok {
		return price, OriginExtrapolated, true
	}

	if l.EstimatedPrice != nil {
		return *l.EstimatedPrice, OriginEstimated, true
	}

	return 0, OriginNone, false
}

// transactionRecent reports whether the transaction date falls within
// the configured calendar-year window.
func transactionRecent(recencyYears int, now, date time.Time) bool {
	return date.Year() >= now.Year()-recencyYears && !date.After(now)
}

// extrapolate scales the asking price of the same-complex unit with the
// closest floor area, by area ratio and the configured premium. Area-diff
// ties break toward the earlier catalog index, so resolution is stable
// and deterministic.
func extrapolate(cfg *PriceConfig, catalog []Listing, i int, byComplex map[string][]int) (float64, bool) {
	target := &catalog[i]
	if target.FloorArea <= 0 {
		return 0, false
	}

	best := -1
	bestDiff := math.Inf(1)
	for _, j := range byComplex[target.ComplexID] {
		if j == i {
			continue
		}
		candidate := &catalog[j]
		if candidate.FloorArea <= 0 {
			continue
		}
		diff := math.Abs(candidate.FloorArea - target.FloorArea)
		if diff < bestDiff {
			best = j
			bestDiff = diff
		}
	}
	if best < 0 {
		return 0, false
	}

	donor := &catalog[best]
	price := *donor.ListingPrice / donor.FloorArea * target.FloorArea * cfg.ExtrapolationPremium
	return price, true
}
