// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"math"
	"sort"
)

// comparator returns the configured multi-key less function over items.
// The canonical mode orders by descending (primary, correlation,
// normalized), then transit priority, line priority, and unit count; the
// budget-gap mode puts ascending |price - budget| first. Equal keys keep
// prior relative order because all sorts here are stable.
func comparator(cfg *Config, pref Preference, items []ResolvedListing) func(i, j int) bool {
	total := pref.TotalBudget()

	return func(i, j int) bool {
		a, b := &items[i], &items[j]

		if cfg.Ranking.Mode == RankByBudgetGap {
			gapA := math.Abs(a.ResolvedPrice - total)
			gapB := math.Abs(b.ResolvedPrice - total)
			if gapA != gapB {
				return gapA < gapB
			}
		}

		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.CorrelationScore != b.CorrelationScore {
			return a.CorrelationScore > b.CorrelationScore
		}
		if a.NormalizedScore != b.NormalizedScore {
			return a.NormalizedScore > b.NormalizedScore
		}
		if pa, pb := transitPriority(pref, a), transitPriority(pref, b); pa != pb {
			return pa > pb
		}
		if la, lb := pref.Lines.Matching(a.ServedLines), pref.Lines.Matching(b.ServedLines); la != lb {
			return la > lb
		}
		return a.UnitCount > b.UnitCount
	}
}

// transitPriority ranks transit-adjacent listings ahead on ties.
func transitPriority(pref Preference, rl *ResolvedListing) int {
	if !rl.TransitAdjacent {
		return 0
	}
	if !pref.Lines.IsAny() && pref.Lines.Matching(rl.ServedLines) > 0 {
		return 2
	}
	return 1
}

// rankAndDedup produces the final ordered top-N: stable multi-key sort
// over the merged set, first-wins dedup by complex identity, then
// truncation. Dedup after sorting keeps the best unit type per complex.
func rankAndDedup(cfg *Config, pref Preference, merged []ResolvedListing, limit int) []ResolvedListing {
	ranked := make([]ResolvedListing, len(merged))
	copy(ranked, merged)
	sort.SliceStable(ranked, comparator(cfg, pref, ranked))

	seen := make(map[string]struct{}, len(ranked))
	out := make([]ResolvedListing, 0, limit)
	for i := range ranked {
		if _, dup := seen[ranked[i].ComplexID]; dup {
			continue
		}
		seen[ranked[i].ComplexID] = struct{}{}
		out = append(out, ranked[i])
		if len(out) == limit {
			break
		}
	}
	return out
}
