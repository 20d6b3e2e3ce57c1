// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

// scorePair computes the primary and correlation scores for one listing.
// Pure: identical inputs always yield identical scores, and widening the
// candidate pool never changes an individual listing's own pair. The
// budget dimension is always judged against the strict tier-0 window, so
// scores are tier-independent.
func scorePair(cfg *Config, pref Preference, rl *ResolvedListing) (primary, correlation float64) {
	lower, upper := budgetWindow(cfg, pref.TotalBudget(), 0)
	withinBudget := rl.ResolvedPrice >= lower && rl.ResolvedPrice <= upper

	if withinBudget {
		primary += cfg.Awards.BudgetMatch
		correlation += cfg.Correlation.Budget
	} else {
		primary += cfg.Awards.BudgetPartial
	}

	primary += scoreArea(cfg, pref, rl, &correlation)
	primary += scoreCondition(cfg, pref, rl, &correlation)
	primary += scoreTransit(cfg, pref, rl, &correlation)
	primary += scoreSize(cfg, pref, rl, &correlation)

	return primary, correlation
}

// scoreArea awards the area-band dimension. The wildcard earns the
// fallback award; the correlation score rewards exact matches only.
func scoreArea(cfg *Config, pref Preference, rl *ResolvedListing, correlation *float64) float64 {
	if pref.AreaBand.IsAny() {
		return cfg.Awards.AreaWildcard
	}
	if areaBandMatches(cfg, pref.AreaBand, &rl.Listing) {
		*correlation += cfg.Correlation.AreaBand
		return cfg.Awards.AreaMatch
	}
	return 0
}

// scoreCondition awards the build-state dimension. The new-construction
// override grants the largest award when the built-year cutoff is met,
// even if the stored category text does not literally match.
func scoreCondition(cfg *Config, pref Preference, rl *ResolvedListing, correlation *float64) float64 {
	want, exact := pref.Condition.Value()
	if !exact {
		return cfg.Awards.ConditionWildcard
	}
	wanted, ok := ParseCondition(want)
	if !ok {
		return 0
	}

	if wanted == ConditionNew && rl.BuiltYear > 0 && rl.BuiltYear >= cfg.ConditionCutoffYear {
		*correlation += cfg.Correlation.Condition
		return cfg.Awards.NewBuildOverride
	}
	if effectiveCondition(cfg, &rl.Listing) == wanted {
		*correlation += cfg.Correlation.Condition
		return cfg.Awards.ConditionMatch
	}
	return 0
}

// scoreTransit awards the transit dimension: full award only when both
// adjacency and a line intersection hold.
func scoreTransit(cfg *Config, pref Preference, rl *ResolvedListing, correlation *float64) float64 {
	if pref.Lines.IsAny() {
		return cfg.Awards.TransitWildcard
	}
	if transitMatches(pref.Lines, &rl.Listing) {
		*correlation += cfg.Correlation.Transit
		return cfg.Awards.TransitMatch
	}
	return 0
}

// scoreSize awards the complex-size dimension.
func scoreSize(cfg *Config, pref Preference, rl *ResolvedListing, correlation *float64) float64 {
	if pref.SizeCategory.IsAny() {
		return cfg.Awards.SizeWildcard
	}
	if sizeMatches(cfg, pref.SizeCategory, &rl.Listing) {
		*correlation += cfg.Correlation.Size
		return cfg.Awards.SizeMatch
	}
	return 0
}

// normBounds holds the min-max bounds of the normalization pool.
type normBounds struct {
	minUnits, maxUnits int
	minYear, maxYear   int
}

// poolBounds computes min-max bounds of unit count and built year over
// the given pool. Unknown (zero) values are skipped.
func poolBounds(pool []ResolvedListing) normBounds {
	b := normBounds{}
	for i := range pool {
		if u := pool[i].UnitCount; u > 0 {
			if b.minUnits == 0 || u < b.minUnits {
				b.minUnits = u
			}
			if u > b.maxUnits {
				b.maxUnits = u
			}
		}
		if y := pool[i].BuiltYear; y > 0 {
			if b.minYear == 0 || y < b.minYear {
				b.minYear = y
			}
			if y > b.maxYear {
				b.maxYear = y
			}
		}
	}
	return b
}

// normalizedScore blends the listing's min-max percentiles within the
// pool bounds. Unknown values and flat pools score zero on their axis.
func normalizedScore(cfg *NormalizationConfig, b normBounds, rl *ResolvedListing) float64 {
	sizePct := percentile(rl.UnitCount, b.minUnits, b.maxUnits)
	yearPct := percentile(rl.BuiltYear, b.minYear, b.maxYear)

	total := cfg.SizeWeight + cfg.YearWeight
	return (cfg.SizeWeight*sizePct + cfg.YearWeight*yearPct) / total
}

// percentile is a clamped min-max position in [0, 1].
func percentile(v, lo, hi int) float64 {
	if v <= 0 || hi <= lo {
		return 0
	}
	if v <= lo {
		return 0
	}
	if v >= hi {
		return 1
	}
	return float64(v-lo) / float64(hi-lo)
}

// scoreAll fills the score fields of every resolved listing. The
// normalization pool is the tier-0-eligible set; when tier 0 is empty
// the whole resolved set serves as the pool so later tiers still get a
// meaningful tertiary score.
func scoreAll(cfg *Config, pref Preference, resolved []ResolvedListing) {
	pool := make([]ResolvedListing, 0, len(resolved))
	for i := range resolved {
		if eligible(cfg, pref, &resolved[i], 0) {
			pool = append(pool, resolved[i])
		}
	}
	if len(pool) == 0 {
		pool = resolved
	}
	bounds := poolBounds(pool)

	for i := range resolved {
		rl := &resolved[i]
		rl.Score, rl.CorrelationScore = scorePair(cfg, pref, rl)
		rl.NormalizedScore = normalizedScore(&cfg.Normalization, bounds, rl)
	}
}
