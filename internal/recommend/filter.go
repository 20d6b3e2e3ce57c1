// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

// budgetWindow returns the inclusive [lower, upper] price window for a
// tier. Tier 0 is the strict window: total budget plus capped flex slack.
// Later tiers stretch the upper bound to total * multiplier, never past
// the absolute cap.
func budgetWindow(cfg *Config, totalBudget float64, tier int) (lower, upper float64) {
	lower = cfg.Budget.LowerBound

	if tier == 0 {
		slack := totalBudget * cfg.Budget.FlexPct
		if slack > cfg.Budget.FlexCap {
			slack = cfg.Budget.FlexCap
		}
		return lower, totalBudget + slack
	}

	mult := cfg.Tiers[tier-1].BudgetMultiplier
	if mult > cfg.Budget.CapMultiplier {
		mult = cfg.Budget.CapMultiplier
	}
	return lower, totalBudget * mult
}

// tierRelaxations returns which category filters the tier lifts.
// Tier 0 lifts none.
func tierRelaxations(cfg *Config, tier int) TierConfig {
	if tier == 0 {
		return TierConfig{}
	}
	return cfg.Tiers[tier-1]
}

// eligible is the per-listing, per-tier hard include/exclude predicate.
func eligible(cfg *Config, pref Preference, rl *ResolvedListing, tier int) bool {
	lower, upper := budgetWindow(cfg, pref.TotalBudget(), tier)
	if rl.ResolvedPrice < lower || rl.ResolvedPrice > upper {
		return false
	}

	relax := tierRelaxations(cfg, tier)

	if !relax.RelaxArea && !areaBandMatches(cfg, pref.AreaBand, &rl.Listing) {
		return false
	}
	if !relax.RelaxCondition && !conditionMatches(cfg, pref.Condition, &rl.Listing) {
		return false
	}
	if !relax.RelaxSize && !sizeMatches(cfg, pref.SizeCategory, &rl.Listing) {
		return false
	}
	return transitMatches(pref.Lines, &rl.Listing)
}

// areaBandMatches checks the pyeong band. Wildcard always passes; an
// unconfigured band name never matches.
func areaBandMatches(cfg *Config, pref Pref, l *Listing) bool {
	name, exact := pref.Value()
	if !exact {
		return true
	}
	band, ok := cfg.areaBand(name)
	if !ok {
		return false
	}
	return band.Contains(l.Pyeong())
}

// conditionMatches checks the build-state category. Listings built in or
// after the cutoff year count as new regardless of their stored category.
// Unknown categories satisfy only the wildcard.
func conditionMatches(cfg *Config, pref Pref, l *Listing) bool {
	want, exact := pref.Value()
	if !exact {
		return true
	}
	wanted, ok := ParseCondition(want)
	if !ok {
		return false
	}
	return effectiveCondition(cfg, l) == wanted
}

// effectiveCondition applies the built-year override to the stored
// category.
func effectiveCondition(cfg *Config, l *Listing) Condition {
	if l.BuiltYear > 0 && l.BuiltYear >= cfg.ConditionCutoffYear {
		return ConditionNew
	}
	return l.Condition
}

// sizeMatches checks the complex-size band. Unknown unit counts satisfy
// only the wildcard.
func sizeMatches(cfg *Config, pref Pref, l *Listing) bool {
	want, exact := pref.Value()
	if !exact {
		return true
	}
	name, ok := cfg.sizeBandOf(l.UnitCount)
	return ok && name == want
}

// transitMatches requires adjacency plus a served/desired line
// intersection when a line preference is stated.
func transitMatches(pref LinePref, l *Listing) bool {
	if pref.IsAny() {
		return true
	}
	return l.TransitAdjacent && pref.Matching(l.ServedLines) > 0
}
