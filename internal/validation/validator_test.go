// Danjiscout - Apartment Complex Buy-Side Recommender
// Copyright 2026 Proxity
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/proxity/danjiscout

package validation

import (
	"strings"
	"testing"
)

type budgetFixture struct {
	Cash  float64 `validate:"gte=0"`
	Loan  float64 `validate:"gte=0"`
	Limit int     `validate:"omitempty,min=1,max=10"`
	Mode  string  `validate:"omitempty,oneof=score budget_gap"`
}

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&budgetFixture{Cash: 16, Loan: 12, Limit: 3, Mode: "score"}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&budgetFixture{Cash: -1})
	if verr == nil {
		t.Fatal("negative cash accepted")
	}
	if len(verr.Errors()) != 1 {
		t.Fatalf("errors = %d, want 1", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %s", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "greater than or equal to 0") {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "Cash" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&budgetFixture{Cash: -1, Loan: -2, Limit: 99, Mode: "random"})
	if verr == nil {
		t.Fatal("invalid struct accepted")
	}
	if len(verr.Errors()) != 4 {
		t.Fatalf("errors = %d, want 4", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 4 {
		t.Errorf("details = %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "Mode must be one of: score budget_gap") {
		t.Errorf("message = %q", apiErr.Message)
	}
}
