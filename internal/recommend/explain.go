// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"fmt"
	"strings"
)

// evaluateMatches re-checks every preference dimension for one selected
// candidate. Wildcard dimensions are always matched by convention and
// never flagged. The budget flag uses the strict tier-0 window.
func evaluateMatches(cfg *Config, pref Preference, rl *ResolvedListing) MatchFlags {
	lower, upper := budgetWindow(cfg, pref.TotalBudget(), 0)

	return MatchFlags{
		Budget:    rl.ResolvedPrice >= lower && rl.ResolvedPrice <= upper,
		AreaBand:  areaBandMatches(cfg, pref.AreaBand, &rl.Listing),
		Condition: conditionMatches(cfg, pref.Condition, &rl.Listing),
		Transit:   transitMatches(pref.Lines, &rl.Listing),
		Size:      sizeMatches(cfg, pref.SizeCategory, &rl.Listing),
	}
}

// classify aggregates match flags into the per-result classification.
func classify(flags MatchFlags) Classification {
	if flags.Budget && flags.AreaBand && flags.Condition && flags.Transit && flags.Size {
		return FullMatch
	}
	return PartialMismatch
}

// overBudgetAmount is how far the resolved price exceeds the total
// budget, 0 when within it.
func overBudgetAmount(price, totalBudget float64) float64 {
	if price <= totalBudget {
		return 0
	}
	return price - totalBudget
}

// buildNote writes the per-result rationale. Full matches confirm the
// stated constraints; alternatives name what was traded away.
func buildNote(pref Preference, flags MatchFlags, over float64) string {
	if classify(flags) == FullMatch {
		return "Meets your stated budget and every selected condition."
	}

	var misses []string
	if !flags.Budget {
		if over > 0 {
			misses = append(misses, fmt.Sprintf("%.2f over your total budget", over))
		} else {
			misses = append(misses, "outside your budget window")
		}
	}
	if !flags.AreaBand {
		misses = append(misses, "a different area band")
	}
	if !flags.Condition {
		misses = append(misses, fmt.Sprintf("not an exact %q condition match", pref.Condition.String()))
	}
	if !flags.Transit {
		misses = append(misses, "weaker transit access")
	}
	if !flags.Size {
		misses = append(misses, "a different complex size")
	}

	return "Alternative pick: " + strings.Join(misses, ", ") +
		", recommended for its overall fit with your remaining criteria."
}

// buildTags derives the display chips for one result.
func buildTags(cfg *Config, rl *ResolvedListing) []string {
	var tags []string
	if rl.TransitAdjacent {
		tags = append(tags, "transit")
	}
	if name, ok := cfg.sizeBandOf(rl.UnitCount); ok {
		tags = append(tags, name)
	}
	if cond := effectiveCondition(cfg, &rl.Listing); cond != ConditionUnknown {
		tags = append(tags, cond.String())
	}
	return tags
}

// buildResult assembles the outward-facing entry for one candidate.
func buildResult(cfg *Config, pref Preference, rl *ResolvedListing) Result {
	flags := evaluateMatches(cfg, pref, rl)
	over := overBudgetAmount(rl.ResolvedPrice, pref.TotalBudget())

	r := Result{
		ComplexID:        rl.ComplexID,
		ComplexName:      rl.ComplexName,
		BuiltYear:        rl.BuiltYear,
		UnitCount:        rl.UnitCount,
		FloorArea:        rl.FloorArea,
		Pyeong:           rl.Pyeong(),
		ResolvedPrice:    rl.ResolvedPrice,
		PriceOrigin:      rl.PriceOrigin.String(),
		Score:            rl.Score,
		CorrelationScore: rl.CorrelationScore,
		NormalizedScore:  rl.NormalizedScore,
		Tier:             rl.Tier,
		Matches:          flags,
		Classification:   classify(flags).String(),
		OverBudget:       over,
		Note:             buildNote(pref, flags, over),
		Tags:             buildTags(cfg, rl),
	}
	if rl.PriceOrigin == OriginTransaction {
		r.TransactionDate = rl.TransactionDate
	}
	return r
}

// buildResults explains every selected candidate in order.
func buildResults(cfg *Config, pref Preference, selected []ResolvedListing) []Result {
	results := make([]Result, len(selected))
	for i := range selected {
		results[i] = buildResult(cfg, pref, &selected[i])
	}
	return results
}

// chooseBanner picks the aggregate header for the result list: all
// full-match, some partial, or none matching.
func chooseBanner(results []Result) Banner {
	if len(results) == 0 {
		return BannerNoneMatch
	}
	full := 0
	for i := range results {
		if results[i].Classification == FullMatch.String() {
			full++
		}
	}
	switch full {
	case len(results):
		return BannerAllMatch
	case 0:
		return BannerNoneMatch
	default:
		return BannerSomePartial
	}
}
