// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package recommend

import (
	"encoding/json"
	"time"
)

// PyeongPerSquareMeter converts exclusive-use floor area to the pyeong
// area unit used by the band categories.
const PyeongPerSquareMeter = 3.3

// PriceOrigin identifies which raw signal produced a resolved price.
type PriceOrigin int

const (
	// OriginNone indicates resolution failed; the listing is excluded.
	OriginNone PriceOrigin = iota
	// OriginTransaction indicates a recent real transaction price was used.
	OriginTransaction
	// OriginListing indicates the current asking price was used.
	OriginListing
	// OriginExtrapolated indicates the price was scaled from a same-complex
	// unit with a known asking price.
	OriginExtrapolated
	// OriginEstimated indicates a pre-computed market-adjusted valuation
	// was used.
	OriginEstimated
)

// String returns a human-readable name for the price origin.
func (o PriceOrigin) String() string {
	switch o {
	case OriginTransaction:
		return "transaction"
	case OriginListing:
		return "listing"
	case OriginExtrapolated:
		return "extrapolated"
	case OriginEstimated:
		return "estimated"
	default:
		return "none"
	}
}

// Condition classifies the build state of a complex.
type Condition int

const (
	// ConditionUnknown means the catalog carries no usable category.
	ConditionUnknown Condition = iota
	// ConditionNew is new construction.
	ConditionNew
	// ConditionExisting is established stock.
	ConditionExisting
	// ConditionRemodeled has been through a remodel.
	ConditionRemodeled
	// ConditionReconstruction is slated for or undergoing reconstruction.
	ConditionReconstruction
)

// String returns the canonical category token.
func (c Condition) String() string {
	switch c {
	case ConditionNew:
		return "new"
	case ConditionExisting:
		return "existing"
	case ConditionRemodeled:
		return "remodeled"
	case ConditionReconstruction:
		return "reconstruction"
	default:
		return "unknown"
	}
}

// ParseCondition maps a category token to a Condition.
// Unrecognized tokens map to ConditionUnknown with ok=false.
func ParseCondition(s string) (Condition, bool) {
	switch s {
	case "new":
		return ConditionNew, true
	case "existing":
		return ConditionExisting, true
	case "remodeled":
		return ConditionRemodeled, true
	case "reconstruction":
		return ConditionReconstruction, true
	default:
		return ConditionUnknown, false
	}
}

// Listing is one unit-type-in-complex catalog record.
// Monetary amounts share a single unit (eok, 100M KRW). Nullable signals
// are pointers; zero BuiltYear or UnitCount means unknown.
type Listing struct {
	// ComplexID groups unit types belonging to the same development.
	ComplexID string `json:"complex_id"`

	// ComplexName is the display name of the development.
	ComplexName string `json:"complex_name"`

	// BuiltYear is the completion year, 0 when unknown.
	BuiltYear int `json:"built_year"`

	// UnitCount is the total households in the complex, 0 when unknown.
	UnitCount int `json:"unit_count"`

	// FloorArea is the exclusive-use area in square meters. Required.
	FloorArea float64 `json:"floor_area"`

	// Condition is the build-state category.
	Condition Condition `json:"condition"`

	// TransitAdjacent marks proximity to rail transit.
	TransitAdjacent bool `json:"transit_adjacent"`

	// ServedLines lists nearby line identifiers. May be empty.
	ServedLines []string `json:"served_lines,omitempty"`

	// ListingPrice is the current asking price.
	ListingPrice *float64 `json:"listing_price,omitempty"`

	// EstimatedPrice is a pre-computed market-adjusted valuation.
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`

	// TransactionPrice is the most recent recorded transaction price.
	TransactionPrice *float64 `json:"transaction_price,omitempty"`

	// TransactionDate is when TransactionPrice was recorded.
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
}

// Pyeong returns the derived area-band unit for the listing.
func (l *Listing) Pyeong() float64 {
	return l.FloorArea / PyeongPerSquareMeter
}

// Pref is one preference dimension: an exact category or the wildcard.
// The zero value is the wildcard, so an unset dimension never filters.
type Pref struct {
	value string
	exact bool
}

// Exact returns a preference requiring the given category.
func Exact(value string) Pref {
	return Pref{value: value, exact: true}
}

// Any returns the wildcard preference.
func Any() Pref {
	return Pref{}
}

// IsAny reports whether the dimension is wildcarded.
func (p Pref) IsAny() bool {
	return !p.exact
}

// Value returns the required category and ok=true for exact preferences.
func (p Pref) Value() (string, bool) {
	return p.value, p.exact
}

// String returns the category token, or "any" for the wildcard.
func (p Pref) String() string {
	if !p.exact {
		return "any"
	}
	return p.value
}

// MarshalJSON encodes the dimension as its category token or "any".
func (p Pref) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes "", "any", or an exact category token.
func (p *Pref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" || s == "any" {
		*p = Any()
		return nil
	}
	*p = Exact(s)
	return nil
}

// LinePref is the transit preference: a set of desired line identifiers
// or the wildcard. An empty set and the wildcard behave identically.
type LinePref struct {
	lines []string
}

// Lines returns a line-set preference. An empty or nil set is the wildcard.
func Lines(lines ...string) LinePref {
	return LinePref{lines: lines}
}

// AnyLine returns the wildcard transit preference.
func AnyLine() LinePref {
	return LinePref{}
}

// IsAny reports whether no transit filtering is requested.
func (p LinePref) IsAny() bool {
	return len(p.lines) == 0
}

// Values returns the desired line identifiers.
func (p LinePref) Values() []string {
	return p.lines
}

// MarshalJSON encodes the desired line set, empty for the wildcard.
func (p LinePref) MarshalJSON() ([]byte, error) {
	if p.lines == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(p.lines)
}

// UnmarshalJSON decodes a line list. An empty list or an "any" entry
// collapses to the wildcard.
func (p *LinePref) UnmarshalJSON(b []byte) error {
	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l == "" || l == "any" {
			*p = AnyLine()
			return nil
		}
		kept = append(kept, l)
	}
	*p = LinePref{lines: kept}
	return nil
}

// Matching returns how many of the listing's served lines are desired.
func (p LinePref) Matching(served []string) int {
	if len(p.lines) == 0 {
		return 0
	}
	n := 0
	for _, want := range p.lines {
		for _, have := range served {
			if want == have {
				n++
				break
			}
		}
	}
	return n
}

// Preference is one buyer's stated constraints for a single request.
type Preference struct {
	// Cash is the available cash, non-negative.
	Cash float64 `json:"cash"`

	// Loan is the available mortgage amount, non-negative.
	Loan float64 `json:"loan"`

	// AreaBand is the desired pyeong band, or the wildcard.
	AreaBand Pref `json:"area_band"`

	// Condition is the desired build-state category, or the wildcard.
	Condition Pref `json:"condition"`

	// Lines is the desired transit line set, or the wildcard.
	Lines LinePref `json:"lines"`

	// SizeCategory is the desired complex-size band, or the wildcard.
	SizeCategory Pref `json:"size_category"`
}

// TotalBudget is cash plus loan. It is always recomputed, never stored.
func (p Preference) TotalBudget() float64 {
	total := p.Cash + p.Loan
	if total < 0 {
		return 0
	}
	return total
}

// ResolvedListing is a Listing with its derived pipeline fields. Resolution
// produces this view; the input record is never mutated.
type ResolvedListing struct {
	Listing

	// ResolvedPrice is the single price chosen by the resolver waterfall.
	ResolvedPrice float64 `json:"resolved_price"`

	// PriceOrigin tags which signal produced ResolvedPrice.
	PriceOrigin PriceOrigin `json:"price_origin"`

	// Score is the primary per-dimension award sum.
	Score float64 `json:"score"`

	// CorrelationScore is the exact-match tie-breaker score.
	CorrelationScore float64 `json:"correlation_score"`

	// NormalizedScore blends unit-count and built-year percentiles within
	// the tier-0-eligible pool.
	NormalizedScore float64 `json:"normalized_score"`

	// Tier records which fallback tier produced the candidate.
	Tier int `json:"tier"`
}

// MatchFlags records the per-dimension outcome for one selected result.
// Wildcard dimensions are always matched by convention.
type MatchFlags struct {
	Budget    bool `json:"budget"`
	AreaBand  bool `json:"area_band"`
	Condition bool `json:"condition"`
	Transit   bool `json:"transit"`
	Size      bool `json:"size"`
}

// Classification aggregates the match flags for one result.
type Classification int

const (
	// FullMatch means every dimension matched and the price sits inside
	// the strict tier-0 budget window.
	FullMatch Classification = iota
	// PartialMismatch means at least one dimension mismatched or the
	// budget window was exceeded.
	PartialMismatch
)

// String returns the wire token for the classification.
func (c Classification) String() string {
	if c == FullMatch {
		return "full_match"
	}
	return "partial_mismatch"
}

// Status is the overall outcome of a recommendation request.
type Status int

const (
	// StatusFull means the target count was reached.
	StatusFull Status = iota
	// StatusPartial means tiers exhausted with some but too few results.
	StatusPartial
	// StatusEmpty means no complex qualified in any tier.
	StatusEmpty
)

// String returns the wire token for the status.
func (s Status) String() string {
	switch s {
	case StatusFull:
		return "FULL"
	case StatusPartial:
		return "PARTIAL"
	default:
		return "EMPTY"
	}
}

// Banner summarizes the top-N match quality for the collaborator's header.
type Banner int

const (
	// BannerAllMatch means every returned result is a full match.
	BannerAllMatch Banner = iota
	// BannerSomePartial means results mix full matches and alternatives.
	BannerSomePartial
	// BannerNoneMatch means no returned result is a full match.
	BannerNoneMatch
)

// String returns the wire token for the banner.
func (b Banner) String() string {
	switch b {
	case BannerAllMatch:
		return "all_match"
	case BannerSomePartial:
		return "some_partial"
	default:
		return "none_match"
	}
}

// Result is one entry of the ordered short-list handed to the collaborator.
type Result struct {
	ComplexID   string  `json:"complex_id"`
	ComplexName string  `json:"complex_name"`
	BuiltYear   int     `json:"built_year,omitempty"`
	UnitCount   int     `json:"unit_count,omitempty"`
	FloorArea   float64 `json:"floor_area"`
	Pyeong      float64 `json:"pyeong"`

	ResolvedPrice float64 `json:"resolved_price"`
	PriceOrigin   string  `json:"price_origin"`

	// TransactionDate is set only when the resolved price came from a
	// recorded transaction.
	TransactionDate *time.Time `json:"transaction_date,omitempty"`

	Score            float64 `json:"score"`
	CorrelationScore float64 `json:"correlation_score"`
	NormalizedScore  float64 `json:"normalized_score"`
	Tier             int     `json:"tier"`

	Matches        MatchFlags `json:"matches"`
	Classification string     `json:"classification"`

	// OverBudget is the amount by which the resolved price exceeds the
	// total budget, 0 when within budget.
	OverBudget float64 `json:"over_budget,omitempty"`

	// Note is the human-readable rationale for the result.
	Note string `json:"note"`

	// Tags are display chips (transit, size band, condition label).
	Tags []string `json:"tags,omitempty"`
}

// Request is one recommendation request.
type Request struct {
	// Preference is the buyer's stated constraints.
	Preference Preference `json:"preference"`

	// Limit is the target result count N. Defaults to
	// Config.Limits.TargetCount when zero.
	Limit int `json:"limit,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the ordered, explained short-list for one request.
type Response struct {
	// Results is the final top-N, one entry per complex.
	Results []Result `json:"results"`

	// Status is FULL, PARTIAL, or EMPTY.
	Status string `json:"status"`

	// Banner summarizes match quality across the results.
	Banner string `json:"banner"`

	// TotalCandidates is the number of listings that survived price
	// resolution and entered eligibility filtering.
	TotalCandidates int `json:"total_candidates"`

	// TiersUsed is how many fallback tiers ran, including tier 0.
	TiersUsed int `json:"tiers_used"`

	// Metadata carries timing and tracing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries timing and tracing information.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// EngineMetrics is a snapshot of the engine's request counters.
type EngineMetrics struct {
	Requests       int64 `json:"requests"`
	FullResults    int64 `json:"full_results"`
	PartialResults int64 `json:"partial_results"`
	EmptyResults   int64 `json:"empty_results"`
	TierAdvances   int64 `json:"tier_advances"`
}
