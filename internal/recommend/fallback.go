// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import "sort"

// tierOutcome is what the fallback controller hands to final ranking.
type tierOutcome struct {
	// merged holds candidates in merge order: tier 0 first in comparator
	// order, then each later tier's additions cheapest-first. A complex
	// may appear more than once within a tier (multiple unit types);
	// final dedup keeps the best-sorted occurrence.
	merged []ResolvedListing

	// tiersUsed counts how many tiers ran, including tier 0.
	tiersUsed int

	// status is FULL when the distinct-complex count reached the target,
	// PARTIAL when tiers exhausted short of it, EMPTY when nothing
	// qualified anywhere.
	status Status
}

// runFallback executes the tier state machine: TIER0 -> TIER1 -> ... ->
// TERMINAL. Each transition fires only while the deduplicated candidate
// count stays below the target; the tier list is finite and fixed by
// configuration, so the controller always terminates.
func runFallback(cfg *Config, pref Preference, resolved []ResolvedListing, target int) tierOutcome {
	out := tierOutcome{}
	present := make(map[string]struct{})

	for tier := 0; tier <= len(cfg.Tiers); tier++ {
		out.tiersUsed = tier + 1
		added := collectTier(cfg, pref, resolved, tier, present)
		orderTierAdditions(cfg, pref, added, tier)
		for i := range added {
			present[added[i].ComplexID] = struct{}{}
		}
		out.merged = append(out.merged, added...)

		if distinctComplexes(out.merged) >= target {
			out.status = StatusFull
			return out
		}
	}

	if len(out.merged) == 0 {
		out.status = StatusEmpty
	} else {
		out.status = StatusPartial
	}
	return out
}

// collectTier gathers the tier's eligible candidates, skipping complexes
// already merged from earlier tiers. Same-tier duplicates of one complex
// are kept; ranking dedup picks the best unit type later.
func collectTier(cfg *Config, pref Preference, resolved []ResolvedListing, tier int, present map[string]struct{}) []ResolvedListing {
	var added []ResolvedListing
	for i := range resolved {
		if _, seen := present[resolved[i].ComplexID]; seen {
			continue
		}
		if !eligible(cfg, pref, &resolved[i], tier) {
			continue
		}
		rl := resolved[i]
		rl.Tier = tier
		added = append(added, rl)
	}
	return added
}

// orderTierAdditions sorts a tier's additions before merging. Tier 0
// uses the final comparator; later tiers hold over-budget candidates and
// go cheapest-first, then by descending primary score.
func orderTierAdditions(cfg *Config, pref Preference, added []ResolvedListing, tier int) {
	if tier == 0 {
		sort.SliceStable(added, comparator(cfg, pref, added))
		return
	}
	sort.SliceStable(added, func(i, j int) bool {
		if added[i].ResolvedPrice != added[j].ResolvedPrice {
			return added[i].ResolvedPrice < added[j].ResolvedPrice
		}
		return added[i].Score > added[j].Score
	})
}

// distinctComplexes counts unique complex identities in the merged set.
func distinctComplexes(merged []ResolvedListing) int {
	seen := make(map[string]struct{}, len(merged))
	for i := range merged {
		seen[merged[i].ComplexID] = struct{}{}
	}
	return len(seen)
}
