// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/proxity/danjiscout/internal/recommend"
)

// Catalog CSV column names. Column order is free; the header row decides.
const (
	colComplexID        = "complex_id"
	colComplexName      = "complex_name"
	colBuiltYear        = "built_year"
	colUnitCount        = "unit_count"
	colFloorArea        = "floor_area"
	colCondition        = "condition"
	colTransitAdjacent  = "transit_adjacent"
	colServedLines      = "served_lines"
	colListingPrice     = "listing_price"
	colEstimatedPrice   = "estimated_price"
	colTransactionPrice = "transaction_price"
	colTransactionDate  = "transaction_date"
)

// transactionDateLayouts are accepted in order. The upstream exports
// carry either full dates or year-month stamps.
var transactionDateLayouts = []string{"2006-01-02", "2006-01", "2006.01.02", "2006.01"}

// carryForward is the per-complex metadata fill state. Unit-type rows
// after the first often leave these cells blank in the source sheet.
type carryForward struct {
	name      string
	builtYear int
	unitCount int
}

// parseCatalog reads the CSV stream into listing records. Rows missing
// the complex identifier or a usable floor area are dropped with a
// warning; malformed optional cells degrade to nulls.
func parseCatalog(r io.Reader, logger zerolog.Logger) (listings []recommend.Listing, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols := indexHeader(header)
	if _, ok := cols[colComplexID]; !ok {
		return nil, 0, fmt.Errorf("missing required column %q", colComplexID)
	}
	if _, ok := cols[colFloorArea]; !ok {
		return nil, 0, fmt.Errorf("missing required column %q", colFloorArea)
	}

	fill := make(map[string]*carryForward)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			dropped++
			logger.Warn().Int("line", line).Err(err).Msg("skipping malformed csv row")
			continue
		}

		l, ok := parseRow(cols, record, fill)
		if !ok {
			dropped++
			logger.Warn().Int("line", line).Msg("skipping row without complex id or floor area")
			continue
		}
		listings = append(listings, l)
	}
	return listings, dropped, nil
}

// indexHeader maps normalized column names to their positions.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// parseRow converts one record, applying the per-complex carry-forward.
func parseRow(cols map[string]int, record []string, fill map[string]*carryForward) (recommend.Listing, bool) {
	id := cell(cols, record, colComplexID)
	if id == "" {
		return recommend.Listing{}, false
	}
	area, ok := parseFloat(cell(cols, record, colFloorArea))
	if !ok || area <= 0 {
		return recommend.Listing{}, false
	}

	cf := fill[id]
	if cf == nil {
		cf = &carryForward{}
		fill[id] = cf
	}
	if name := cell(cols, record, colComplexName); name != "" {
		cf.name = name
	}
	if year, ok := parseInt(cell(cols, record, colBuiltYear)); ok && year > 0 {
		cf.builtYear = year
	}
	if units, ok := parseInt(cell(cols, record, colUnitCount)); ok && units > 0 {
		cf.unitCount = units
	}

	l := recommend.Listing{
		ComplexID:       id,
		ComplexName:     cf.name,
		BuiltYear:       cf.builtYear,
		UnitCount:       cf.unitCount,
		FloorArea:       area,
		Condition:       parseCondition(cell(cols, record, colCondition)),
		TransitAdjacent: parseFlag(cell(cols, record, colTransitAdjacent)),
		ServedLines:     splitLines(cell(cols, record, colServedLines)),
	}

	l.ListingPrice = optionalFloat(cell(cols, record, colListingPrice))
	l.EstimatedPrice = optionalFloat(cell(cols, record, colEstimatedPrice))
	l.TransactionPrice = optionalFloat(cell(cols, record, colTransactionPrice))
	if when, ok := parseDate(cell(cols, record, colTransactionDate)); ok {
		l.TransactionDate = &when
	}
	return l, true
}

// cell fetches a trimmed field by column name, "" when absent.
func cell(cols map[string]int, record []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func optionalFloat(s string) *float64 {
	if v, ok := parseFloat(s); ok {
		return &v
	}
	return nil
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	// Exports sometimes carry counts as floats ("1500.0").
	v, ok := parseFloat(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// parseFlag accepts the upstream Y/N markers alongside usual booleans.
func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}

// conditionAliases maps source-sheet category labels to conditions. The
// Korean labels come straight from the upstream listing sheets.
var conditionAliases = map[string]recommend.Condition{
	"new":            recommend.ConditionNew,
	"신축":             recommend.ConditionNew,
	"existing":       recommend.ConditionExisting,
	"기축":             recommend.ConditionExisting,
	"remodeled":      recommend.ConditionRemodeled,
	"리모델링":           recommend.ConditionRemodeled,
	"reconstruction": recommend.ConditionReconstruction,
	"재건축":            recommend.ConditionReconstruction,
}

func parseCondition(s string) recommend.Condition {
	if c, ok := conditionAliases[strings.ToLower(s)]; ok {
		return c
	}
	return recommend.ConditionUnknown
}

// splitLines parses the served-line cell, accepting ";" or "," separators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ','
	})
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			lines = append(lines, f)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range transactionDateLayouts {
		if when, err := time.Parse(layout, s); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}
