// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"encoding/json"
	"fmt"
)

// Config contains every behavioral knob of the recommendation engine.
// The defaults mirror the canonical variant of the source heuristics;
// none of them are requirements, all are configuration.
type Config struct {
	// Price contains price-resolution parameters.
	Price PriceConfig `json:"price" koanf:"price"`

	// Budget contains the tier-0 budget window parameters.
	Budget BudgetConfig `json:"budget" koanf:"budget"`

	// Awards is the primary score award table.
	Awards AwardConfig `json:"awards" koanf:"awards"`

	// Correlation is the tie-breaker award table. Weights are strictly
	// smaller than the primary awards and grant no wildcard fallback.
	Correlation CorrelationConfig `json:"correlation" koanf:"correlation"`

	// Normalization blends the pool percentiles of the tertiary score.
	Normalization NormalizationConfig `json:"normalization" koanf:"normalization"`

	// Tiers is the ordered fallback tier list after tier 0.
	Tiers []TierConfig `json:"tiers" koanf:"tiers"`

	// Ranking selects the final comparator.
	Ranking RankingConfig `json:"ranking" koanf:"ranking"`

	// AreaBands maps band names to pyeong ranges. Ranges are contiguous
	// and non-overlapping; MaxPyeong 0 means unbounded.
	AreaBands []AreaBandConfig `json:"area_bands" koanf:"area_bands"`

	// SizeBands maps complex-size category names to unit-count ranges.
	// MaxUnits 0 means unbounded.
	SizeBands []SizeBandConfig `json:"size_bands" koanf:"size_bands"`

	// ConditionCutoffYear treats listings built in or after this year as
	// new construction regardless of their stored category.
	ConditionCutoffYear int `json:"condition_cutoff_year" koanf:"condition_cutoff_year"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`
}

// PriceConfig contains price-resolution parameters.
type PriceConfig struct {
	// RecencyYears is the transaction recency window in calendar years.
	// 1 accepts the current and immediately preceding calendar year.
	RecencyYears int `json:"recency_years" koanf:"recency_years"`

	// ExtrapolationPremium multiplies same-complex area-scaled prices.
	ExtrapolationPremium float64 `json:"extrapolation_premium" koanf:"extrapolation_premium"`
}

// BudgetConfig contains the tier-0 budget window parameters.
type BudgetConfig struct {
	// FlexPct is the fractional budget slack at tier 0.
	FlexPct float64 `json:"flex_pct" koanf:"flex_pct"`

	// FlexCap is the absolute ceiling on the tier-0 slack, in the same
	// monetary unit as prices.
	FlexCap float64 `json:"flex_cap" koanf:"flex_cap"`

	// LowerBound is the optional lower budget bound, 0 unless configured.
	LowerBound float64 `json:"lower_bound" koanf:"lower_bound"`

	// CapMultiplier bounds how far any fallback tier may stretch the
	// budget, as a multiple of the total budget.
	CapMultiplier float64 `json:"cap_multiplier" koanf:"cap_multiplier"`
}

// AwardConfig is the primary score award table. Each dimension awards
// points independently; mismatches award nothing.
type AwardConfig struct {
	// BudgetMatch is awarded when the resolved price sits inside the
	// strict tier-0 window.
	BudgetMatch float64 `json:"budget_match" koanf:"budget_match"`

	// BudgetPartial is awarded to over-window candidates.
	BudgetPartial float64 `json:"budget_partial" koanf:"budget_partial"`

	AreaMatch    float64 `json:"area_match" koanf:"area_match"`
	AreaWildcard float64 `json:"area_wildcard" koanf:"area_wildcard"`

	ConditionMatch    float64 `json:"condition_match" koanf:"condition_match"`
	ConditionWildcard float64 `json:"condition_wildcard" koanf:"condition_wildcard"`

	// NewBuildOverride is the largest condition award, granted when the
	// built-year cutoff is met and the buyer wants new construction,
	// even if the stored category text differs.
	NewBuildOverride float64 `json:"new_build_override" koanf:"new_build_override"`

	TransitMatch    float64 `json:"transit_match" koanf:"transit_match"`
	TransitWildcard float64 `json:"transit_wildcard" koanf:"transit_wildcard"`

	SizeMatch    float64 `json:"size_match" koanf:"size_match"`
	SizeWildcard float64 `json:"size_wildcard" koanf:"size_wildcard"`
}

// CorrelationConfig mirrors the primary dimensions with strictly smaller
// weights and no wildcard fallback. It rewards exact, non-wildcarded
// matches only.
type CorrelationConfig struct {
	Budget    float64 `json:"budget" koanf:"budget"`
	AreaBand  float64 `json:"area_band" koanf:"area_band"`
	Condition float64 `json:"condition" koanf:"condition"`
	Transit   float64 `json:"transit" koanf:"transit"`
	Size      float64 `json:"size" koanf:"size"`
}

// NormalizationConfig blends the min-max percentiles of the tertiary score.
type NormalizationConfig struct {
	// SizeWeight is the unit-count percentile weight.
	SizeWeight float64 `json:"size_weight" koanf:"size_weight"`

	// YearWeight is the built-year percentile weight.
	YearWeight float64 `json:"year_weight" koanf:"year_weight"`
}

// TierConfig describes one fallback tier. Each tier relaxes the budget
// bound; category filters stay applied unless explicitly relaxed here.
type TierConfig struct {
	// BudgetMultiplier stretches the budget upper bound to
	// total_budget * BudgetMultiplier, capped by Budget.CapMultiplier.
	BudgetMultiplier float64 `json:"budget_multiplier" koanf:"budget_multiplier"`

	// RelaxCondition additionally lifts the condition filter, letting
	// the tier surface alternative complexes that miss the stated
	// build-state category.
	RelaxCondition bool `json:"relax_condition" koanf:"relax_condition"`

	// RelaxArea additionally lifts the area-band filter.
	RelaxArea bool `json:"relax_area" koanf:"relax_area"`

	// RelaxSize additionally lifts the complex-size filter.
	RelaxSize bool `json:"relax_size" koanf:"relax_size"`
}

// RankingConfig selects the final comparator.
type RankingConfig struct {
	// Mode is "score" (descending score keys) or "budget_gap"
	// (ascending |resolved_price - total_budget| first).
	Mode string `json:"mode" koanf:"mode"`
}

// Ranking modes.
const (
	RankByScore     = "score"
	RankByBudgetGap = "budget_gap"
)

// AreaBandConfig maps a band name to a pyeong range [MinPyeong, MaxPyeong).
type AreaBandConfig struct {
	Name      string  `json:"name" koanf:"name"`
	MinPyeong float64 `json:"min_pyeong" koanf:"min_pyeong"`
	// MaxPyeong 0 means unbounded.
	MaxPyeong float64 `json:"max_pyeong" koanf:"max_pyeong"`
}

// Contains reports whether the pyeong value falls in the band.
func (b AreaBandConfig) Contains(pyeong float64) bool {
	if pyeong < b.MinPyeong {
		return false
	}
	return b.MaxPyeong == 0 || pyeong < b.MaxPyeong
}

// SizeBandConfig maps a complex-size category to a unit-count range
// [MinUnits, MaxUnits]. MaxUnits 0 means unbounded.
type SizeBandConfig struct {
	Name     string `json:"name" koanf:"name"`
	MinUnits int    `json:"min_units" koanf:"min_units"`
	MaxUnits int    `json:"max_units" koanf:"max_units"`
}

// Contains reports whether the unit count falls in the band.
func (b SizeBandConfig) Contains(units int) bool {
	if units < b.MinUnits {
		return false
	}
	return b.MaxUnits == 0 || units <= b.MaxUnits
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// TargetCount is the default result target N.
	TargetCount int `json:"target_count" koanf:"target_count"`

	// MaxLimit caps a per-request Limit override.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`
}

// Default area band names.
const (
	Band10Under = "10under"
	Band20s     = "20s"
	Band30s     = "30s"
	Band40Plus  = "40plus"
)

// Default complex-size band names.
const (
	SizeLarge    = "large"
	SizeSmallMid = "small_mid"
	SizeSmall    = "small"
)

// DefaultConfig returns the canonical engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Price: PriceConfig{
			RecencyYears:         1,
			ExtrapolationPremium: 1.05,
		},
		Budget: BudgetConfig{
			FlexPct:       0.1,
			FlexCap:       1.0,
			LowerBound:    0,
			CapMultiplier: 1.5,
		},
		Awards: AwardConfig{
			BudgetMatch:       2.0,
			BudgetPartial:     0,
			AreaMatch:         1.5,
			AreaWildcard:      1.0,
			ConditionMatch:    1.5,
			ConditionWildcard: 1.0,
			NewBuildOverride:  2.0,
			TransitMatch:      1.5,
			TransitWildcard:   1.0,
			SizeMatch:         1.0,
			SizeWildcard:      1.0,
		},
		Correlation: CorrelationConfig{
			Budget:    1.0,
			AreaBand:  0.75,
			Condition: 0.75,
			Transit:   0.75,
			Size:      0.5,
		},
		Normalization: NormalizationConfig{
			SizeWeight: 0.6,
			YearWeight: 0.4,
		},
		Tiers: []TierConfig{
			{BudgetMultiplier: 1.15},
			{BudgetMultiplier: 1.3},
			{BudgetMultiplier: 1.5, RelaxCondition: true},
		},
		Ranking: RankingConfig{
			Mode: RankByScore,
		},
		AreaBands: []AreaBandConfig{
			{Name: Band10Under, MinPyeong: 0, MaxPyeong: 20},
			{Name: Band20s, MinPyeong: 20, MaxPyeong: 30},
			{Name: Band30s, MinPyeong: 30, MaxPyeong: 40},
			{Name: Band40Plus, MinPyeong: 40, MaxPyeong: 0},
		},
		SizeBands: []SizeBandConfig{
			{Name: SizeLarge, MinUnits: 1000, MaxUnits: 0},
			{Name: SizeSmallMid, MinUnits: 300, MaxUnits: 999},
			{Name: SizeSmall, MinUnits: 1, MaxUnits: 299},
		},
		ConditionCutoffYear: 2018,
		Limits: LimitsConfig{
			TargetCount: 3,
			MaxLimit:    10,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Price.RecencyYears < 0 {
		return fmt.Errorf("price.recency_years must be >= 0, got %d", c.Price.RecencyYears)
	}
	if c.Price.ExtrapolationPremium <= 0 {
		return fmt.Errorf("price.extrapolation_premium must be > 0, got %g", c.Price.ExtrapolationPremium)
	}
	if c.Budget.FlexPct < 0 || c.Budget.FlexPct > 1 {
		return fmt.Errorf("budget.flex_pct must be in [0,1], got %g", c.Budget.FlexPct)
	}
	if c.Budget.FlexCap < 0 {
		return fmt.Errorf("budget.flex_cap must be >= 0, got %g", c.Budget.FlexCap)
	}
	if c.Budget.LowerBound < 0 {
		return fmt.Errorf("budget.lower_bound must be >= 0, got %g", c.Budget.LowerBound)
	}
	if c.Budget.CapMultiplier < 1 {
		return fmt.Errorf("budget.cap_multiplier must be >= 1, got %g", c.Budget.CapMultiplier)
	}
	if err := c.validateTiers(); err != nil {
		return err
	}
	if err := c.validateAwards(); err != nil {
		return err
	}
	if err := c.validateBands(); err != nil {
		return err
	}
	if c.Normalization.SizeWeight < 0 || c.Normalization.YearWeight < 0 {
		return fmt.Errorf("normalization weights must be >= 0")
	}
	if c.Normalization.SizeWeight+c.Normalization.YearWeight == 0 {
		return fmt.Errorf("normalization weights must not both be zero")
	}
	if c.Ranking.Mode != RankByScore && c.Ranking.Mode != RankByBudgetGap {
		return fmt.Errorf("ranking.mode must be %q or %q, got %q", RankByScore, RankByBudgetGap, c.Ranking.Mode)
	}
	if c.Limits.TargetCount < 1 {
		return fmt.Errorf("limits.target_count must be >= 1, got %d", c.Limits.TargetCount)
	}
	if c.Limits.MaxLimit < c.Limits.TargetCount {
		return fmt.Errorf("limits.max_limit must be >= target_count")
	}
	return nil
}

// validateTiers checks the fallback tier list is finite, widening, and
// bounded by the absolute cap.
func (c *Config) validateTiers() error {
	prev := 1.0
	for i, t := range c.Tiers {
		if t.BudgetMultiplier < prev {
			return fmt.Errorf("tiers[%d].budget_multiplier %g must be >= %g (tiers widen monotonically)", i, t.BudgetMultiplier, prev)
		}
		if t.BudgetMultiplier > c.Budget.CapMultiplier {
			return fmt.Errorf("tiers[%d].budget_multiplier %g exceeds budget.cap_multiplier %g", i, t.BudgetMultiplier, c.Budget.CapMultiplier)
		}
		prev = t.BudgetMultiplier
	}
	return nil
}

// validateAwards checks award non-negativity and the correlation
// invariant (strictly smaller than the corresponding primary award).
func (c *Config) validateAwards() error {
	awards := []struct {
		name  string
		value float64
	}{
		{"budget_match", c.Awards.BudgetMatch},
		{"budget_partial", c.Awards.BudgetPartial},
		{"area_match", c.Awards.AreaMatch},
		{"area_wildcard", c.Awards.AreaWildcard},
		{"condition_match", c.Awards.ConditionMatch},
		{"condition_wildcard", c.Awards.ConditionWildcard},
		{"new_build_override", c.Awards.NewBuildOverride},
		{"transit_match", c.Awards.TransitMatch},
		{"transit_wildcard", c.Awards.TransitWildcard},
		{"size_match", c.Awards.SizeMatch},
		{"size_wildcard", c.Awards.SizeWildcard},
	}
	for _, a := range awards {
		if a.value < 0 {
			return fmt.Errorf("awards.%s must be >= 0, got %g", a.name, a.value)
		}
	}

	pairs := []struct {
		name        string
		correlation float64
		primary     float64
	}{
		{"budget", c.Correlation.Budget, c.Awards.BudgetMatch},
		{"area_band", c.Correlation.AreaBand, c.Awards.AreaMatch},
		{"condition", c.Correlation.Condition, c.Awards.ConditionMatch},
		{"transit", c.Correlation.Transit, c.Awards.TransitMatch},
		{"size", c.Correlation.Size, c.Awards.SizeMatch},
	}
	for _, p := range pairs {
		if p.correlation < 0 {
			return fmt.Errorf("correlation.%s must be >= 0, got %g", p.name, p.correlation)
		}
		if p.correlation >= p.primary && p.primary > 0 {
			return fmt.Errorf("correlation.%s %g must be smaller than the primary award %g", p.name, p.correlation, p.primary)
		}
	}
	return nil
}

// validateBands checks band names are unique and ranges are sane.
func (c *Config) validateBands() error {
	if len(c.AreaBands) == 0 {
		return fmt.Errorf("area_bands must not be empty")
	}
	seen := make(map[string]struct{}, len(c.AreaBands))
	for i, b := range c.AreaBands {
		if b.Name == "" {
			return fmt.Errorf("area_bands[%d].name must not be empty", i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("area_bands has duplicate name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.MaxPyeong != 0 && b.MaxPyeong <= b.MinPyeong {
			return fmt.Errorf("area_bands[%d] has empty range", i)
		}
	}

	if len(c.SizeBands) == 0 {
		return fmt.Errorf("size_bands must not be empty")
	}
	seen = make(map[string]struct{}, len(c.SizeBands))
	for i, b := range c.SizeBands {
		if b.Name == "" {
			return fmt.Errorf("size_bands[%d].name must not be empty", i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("size_bands has duplicate name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.MaxUnits != 0 && b.MaxUnits < b.MinUnits {
			return fmt.Errorf("size_bands[%d] has empty range", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		// Config is a plain data struct; marshal cannot fail on it.
		panic(fmt.Sprintf("clone config: %v", err))
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		panic(fmt.Sprintf("clone config: %v", err))
	}
	return clone
}

// areaBand finds the configured band by name.
func (c *Config) areaBand(name string) (AreaBandConfig, bool) {
	for _, b := range c.AreaBands {
		if b.Name == name {
			return b, true
		}
	}
	return AreaBandConfig{}, false
}

// sizeBandOf returns the name of the band containing the unit count.
// Unknown unit counts (0) belong to no band.
func (c *Config) sizeBandOf(units int) (string, bool) {
	if units <= 0 {
		return "", false
	}
	for _, b := range c.SizeBands {
		if b.Contains(units) {
			return b.Name, true
		}
	}
	return "", false
}
