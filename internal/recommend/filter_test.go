// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import "testing"

func TestBudgetWindowTierZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     float64
		wantUpper float64
	}{
		// With flex_pct 0.1 and flex_cap 1.0 the slack is min(1.0, total*0.1).
		{"slack hits the absolute cap", 28, 29},
		{"fractional slack below the cap", 8, 8.8},
		{"zero budget gets zero slack", 0, 0},
	}
	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lower, upper := budgetWindow(cfg, tt.total, 0)
			if lower != 0 {
				t.Errorf("lower = %g, want 0", lower)
			}
			if !almostEqual(upper, tt.wantUpper) {
				t.Errorf("upper = %g, want %g", upper, tt.wantUpper)
			}
		})
	}
}

func TestBudgetWindowFallbackTiers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := []struct {
		tier      int
		wantUpper float64
	}{
		{1, 28 * 1.15},
		{2, 28 * 1.3},
		{3, 28 * 1.5},
	}
	for _, tt := range tests {
		_, upper := budgetWindow(cfg, 28, tt.tier)
		if !almostEqual(upper, tt.wantUpper) {
			t.Errorf("tier %d upper = %g, want %g", tt.tier, upper, tt.wantUpper)
		}
	}
}

func TestBudgetBoundaryInclusionAcrossTiers(t *testing.T) {
	t.Parallel()

	// cash 16 + loan 12 = 28; tier-0 upper is 28 + min(1.0, 2.8) = 29.0.
	// A price exactly at the bound is included; a cent over waits for tier 1.
	cfg := DefaultConfig()
	pref := Preference{Cash: 16, Loan: 12}

	atBound := ResolvedListing{
		Listing:       Listing{ComplexID: "a", FloorArea: 84},
		ResolvedPrice: 29.0,
		PriceOrigin:   OriginListing,
	}
	if !eligible(cfg, pref, &atBound, 0) {
		t.Error("price exactly at budget_upper must be tier-0 eligible")
	}

	overBound := atBound
	overBound.ResolvedPrice = 29.01
	if eligible(cfg, pref, &overBound, 0) {
		t.Error("price over budget_upper must not be tier-0 eligible")
	}
	if !eligible(cfg, pref, &overBound, 1) {
		t.Error("price within tier-1 multiplier must be tier-1 eligible")
	}
}

func TestEligibleCategoryFilters(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	base := ResolvedListing{
		Listing: Listing{
			ComplexID:       "a",
			BuiltYear:       2005,
			UnitCount:       1200,
			FloorArea:       84, // 25.45 pyeong: the 20s band
			Condition:       ConditionExisting,
			TransitAdjacent: true,
			ServedLines:     []string{"3", "7"},
		},
		ResolvedPrice: 20,
	}

	tests := []struct {
		name string
		pref Preference
		want bool
	}{
		{
			name: "all wildcards pass",
			pref: Preference{Cash: 20},
			want: true,
		},
		{
			name: "matching area band passes",
			pref: Preference{Cash: 20, AreaBand: Exact(Band20s)},
			want: true,
		},
		{
			name: "mismatching area band excludes",
			pref: Preference{Cash: 20, AreaBand: Exact(Band30s)},
			want: false,
		},
		{
			name: "unconfigured area band name excludes",
			pref: Preference{Cash: 20, AreaBand: Exact("50s")},
			want: false,
		},
		{
			name: "matching condition passes",
			pref: Preference{Cash: 20, Condition: Exact("existing")},
			want: true,
		},
		{
			name: "mismatching condition excludes",
			pref: Preference{Cash: 20, Condition: Exact("new")},
			want: false,
		},
		{
			name: "matching size band passes",
			pref: Preference{Cash: 20, SizeCategory: Exact(SizeLarge)},
			want: true,
		},
		{
			name: "mismatching size band excludes",
			pref: Preference{Cash: 20, SizeCategory: Exact(SizeSmall)},
			want: false,
		},
		{
			name: "desired line served passes",
			pref: Preference{Cash: 20, Lines: Lines("3")},
			want: true,
		},
		{
			name: "desired line not served excludes",
			pref: Preference{Cash: 20, Lines: Lines("9")},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := base
			if got := eligible(cfg, tt.pref, &rl, 0); got != tt.want {
				t.Errorf("eligible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelaxedTierLiftsConditionOnly(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	pref := Preference{Cash: 20, Condition: Exact("new"), AreaBand: Exact(Band20s)}

	rl := ResolvedListing{
		Listing: Listing{
			ComplexID: "a",
			BuiltYear: 2005,
			FloorArea: 84,
			Condition: ConditionExisting,
		},
		ResolvedPrice: 20,
	}

	// Tiers 1 and 2 keep the condition filter; the last tier relaxes it.
	if eligible(cfg, pref, &rl, 1) {
		t.Error("condition mismatch must exclude on a non-relaxed tier")
	}
	if !eligible(cfg, pref, &rl, 3) {
		t.Error("relaxed tier must admit the condition mismatch")
	}

	// The area filter survives relaxation of the condition filter.
	small := rl
	small.FloorArea = 45
	if eligible(cfg, pref, &small, 3) {
		t.Error("area mismatch must still exclude on the condition-relaxed tier")
	}
}

func TestConditionCutoffOverride(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name      string
		builtYear int
		stored    Condition
		wantNew   bool
	}{
		{"built at cutoff counts as new", 2018, ConditionExisting, true},
		{"built after cutoff counts as new", 2024, ConditionReconstruction, true},
		{"built before cutoff keeps stored category", 2017, ConditionExisting, false},
		{"unknown year keeps stored category", 0, ConditionExisting, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := Listing{BuiltYear: tt.builtYear, Condition: tt.stored}
			got := conditionMatches(cfg, Exact("new"), &l)
			if got != tt.wantNew {
				t.Errorf("conditionMatches(new) = %v, want %v", got, tt.wantNew)
			}
		})
	}
}

func TestSizeMatchesUnknownUnits(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	l := Listing{UnitCount: 0}

	if !sizeMatches(cfg, Any(), &l) {
		t.Error("unknown unit count must satisfy the wildcard")
	}
	if sizeMatches(cfg, Exact(SizeSmall), &l) {
		t.Error("unknown unit count must not satisfy an exact size band")
	}
}

func TestTransitMatchesRequiresAdjacencyAndLine(t *testing.T) {
	t.Parallel()

	pref := Lines("3")

	adjacentWrongLine := Listing{TransitAdjacent: true, ServedLines: []string{"9"}}
	if transitMatches(pref, &adjacentWrongLine) {
		t.Error("adjacency without the desired line must not match")
	}

	lineNotAdjacent := Listing{TransitAdjacent: false, ServedLines: []string{"3"}}
	if transitMatches(pref, &lineNotAdjacent) {
		t.Error("desired line without adjacency must not match")
	}

	both := Listing{TransitAdjacent: true, ServedLines: []string{"3", "7"}}
	if !transitMatches(pref, &both) {
		t.Error("adjacency plus the desired line must match")
	}
}
