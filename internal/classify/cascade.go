// Package classify resolves a transaction's account path against the chart
// of accounts: cascading level selection, validation, rule-based suggestion,
// and reconciliation.
package classify

import (
	"fmt"
	"strings"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// PathChecker tests whether a classification path exists in the chart.
type PathChecker interface {
	HasPath(path model.Classification) bool
}

// SetLevel1 assigns a new level-1 value. Changing it invalidates whatever
// was selected below, so level 2 and 3 are cleared.
func SetLevel1(c *model.Classification, value string) {
	if c.Level1 == value {
		return
	}
	c.Level1 = value
	c.Level2 = ""
	c.Level3 = ""
}

// SetLevel2 assigns a new level-2 value, clearing level 3 on change.
func SetLevel2(c *model.Classification, value string) {
	if c.Level2 == value {
		return
	}
	c.Level2 = value
	c.Level3 = ""
}

// Validation is the discriminated result of validating a classification.
type Validation struct {
	OK     bool
	Reason string
}

func invalid(format string, args ...any) Validation {
	return Validation{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a transaction's classification against the chart: a
// non-empty lower level must have its parent set, and every non-empty level
// must exist at that path. An entirely empty classification is valid (the
// transaction is simply unclassified).
func Validate(t *model.Transaction, chart PathChecker) Validation {
	c := t.Classification
	if c.IsEmpty() {
		return Validation{OK: true}
	}
	if strings.TrimSpace(c.Level2) != "" && strings.TrimSpace(c.Level1) == "" {
		return invalid("level 2 %q has no level 1", c.Level2)
	}
	if strings.TrimSpace(c.Level3) != "" && strings.TrimSpace(c.Level2) == "" {
		return invalid("level 3 %q has no level 2", c.Level3)
	}
	if !chart.HasPath(c) {
		return invalid("path %q / %q / %q not in chart", c.Level1, c.Level2, c.Level3)
	}
	return Validation{OK: true}
}

// Reconcile applies a classification plus the companion fields and flips
// the transaction to reconciled. The path must validate against the chart.
func Reconcile(t *model.Transaction, chart PathChecker, c model.Classification, costCenter, reference, notes string) error {
	probe := *t
	probe.Classification = c
	if v := Validate(&probe, chart); !v.OK {
		return fmt.Errorf("invalid classification: %s", v.Reason)
	}
	t.Classification = c
	t.CostCenter = costCenter
	if reference != "" {
		t.Reference = reference
	}
	if notes != "" {
		t.Notes = notes
	}
	t.Status = model.StatusReconciled
	return nil
}

// DuplicateLastClassification copies the classification triple and cost
// center of the most recently reconciled transaction onto target. "Most
// recent" is collection order: the last reconciled entry in the slice wins,
// regardless of transaction dates.
func DuplicateLastClassification(target *model.Transaction, transactions []*model.Transaction) bool {
	var last *model.Transaction
	for _, t := range transactions {
		if t.IsReconciled() {
			last = t
		}
	}
	if last == nil {
		return false
	}
	target.Classification = last.Classification
	target.CostCenter = last.CostCenter
	return true
}
