// Package audit runs independent data-quality checks over the transaction
// collection. Checks never mutate data; findings are informational and block
// nothing.
package audit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Kind tags an audit finding.
type Kind string

const (
	KindUnclassified Kind = "unclassified"
	KindDuplicate    Kind = "duplicate"
	KindOutlier      Kind = "outlier"
	KindIncomplete   Kind = "incomplete"
	KindInvalidDate  Kind = "invalid_date"
	KindFutureDate   Kind = "future_date"
	KindOldDate      Kind = "old_date"
	KindZeroAmount   Kind = "zero_amount"
	KindDoubleAmount Kind = "double_amount"
)

// Finding is one issue located by a check.
type Finding struct {
	Kind          Kind
	TransactionID string
	// RelatedID points at the first occurrence for duplicate findings.
	RelatedID string
	Message   string
}

// Report aggregates the findings of a full audit pass.
type Report struct {
	Findings []Finding
}

// ByKind returns the findings of one kind, preserving order.
func (r Report) ByKind(kind Kind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Run executes every check against the collection. now is the processing
// date used by the date checks.
func Run(transactions []*model.Transaction, now time.Time) Report {
	var r Report
	r.Findings = append(r.Findings, Unclassified(transactions)...)
	r.Findings = append(r.Findings, Duplicates(transactions)...)
	r.Findings = append(r.Findings, Outliers(transactions)...)
	r.Findings = append(r.Findings, Incomplete(transactions)...)
	r.Findings = append(r.Findings, DateAnomalies(transactions, now)...)
	r.Findings = append(r.Findings, BalanceAnomalies(transactions)...)
	return r
}

// Unclassified flags transactions without a level-1 classification.
func Unclassified(transactions []*model.Transaction) []Finding {
	var findings []Finding
	for _, t := range transactions {
		if strings.TrimSpace(t.Classification.Level1) == "" {
			findings = append(findings, Finding{
				Kind:          KindUnclassified,
				TransactionID: t.ID,
				Message:       "no level 1 classification",
			})
		}
	}
	return findings
}

func duplicateKey(t *model.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		t.Date.Format("2006-01-02"), t.Description,
		t.AmountIn.String(), t.AmountOut.String())
}

// Duplicates flags every repeat of an exact (date, description, amount_in,
// amount_out) key. The first occurrence is the original; each later match
// yields one finding, so N identical rows produce N-1 findings.
func Duplicates(transactions []*model.Transaction) []Finding {
	seen := make(map[string]string)
	var findings []Finding
	for _, t := range transactions {
		key := duplicateKey(t)
		if originalID, ok := seen[key]; ok {
			findings = append(findings, Finding{
				Kind:          KindDuplicate,
				TransactionID: t.ID,
				RelatedID:     originalID,
				Message:       "same date, description and amounts as an earlier transaction",
			})
			continue
		}
		seen[key] = t.ID
	}
	return findings
}

// Outliers flags transactions whose dominant amount falls outside the Tukey
// fences (Q1 - 1.5*IQR, Q3 + 1.5*IQR). Quartiles are floor-indexed over the
// sorted positive amounts.
func Outliers(transactions []*model.Transaction) []Finding {
	var amounts []decimal.Decimal
	for _, t := range transactions {
		if a := t.MaxAmount(); a.IsPositive() {
			amounts = append(amounts, a)
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
	q1 := amounts[len(amounts)/4]
	q3 := amounts[len(amounts)*3/4]
	iqr := q3.Sub(q1)
	spread := iqr.Mul(decimal.NewFromFloat(1.5))
	lower := q1.Sub(spread)
	upper := q3.Add(spread)

	var findings []Finding
	for _, t := range transactions {
		a := t.MaxAmount()
		if a.LessThan(lower) || a.GreaterThan(upper) {
			findings = append(findings, Finding{
				Kind:          KindOutlier,
				TransactionID: t.ID,
				Message: fmt.Sprintf("amount %s outside [%s, %s]",
					a.StringFixed(2), lower.StringFixed(2), upper.StringFixed(2)),
			})
		}
	}
	return findings
}

// Incomplete flags transactions missing a description, a non-zero amount,
// or a usable date.
func Incomplete(transactions []*model.Transaction) []Finding {
	var findings []Finding
	for _, t := range transactions {
		var missing []string
		if strings.TrimSpace(t.Description) == "" {
			missing = append(missing, "description")
		}
		if !t.AmountIn.IsPositive() && !t.AmountOut.IsPositive() {
			missing = append(missing, "amount")
		}
		if t.Date.IsZero() || t.DateUnparsed {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			findings = append(findings, Finding{
				Kind:          KindIncomplete,
				TransactionID: t.ID,
				Message:       "missing " + strings.Join(missing, ", "),
			})
		}
	}
	return findings
}

// DateAnomalies flags unparseable dates, dates more than one day in the
// future, and dates before January 1st five years back.
func DateAnomalies(transactions []*model.Transaction, now time.Time) []Finding {
	future := now.Add(24 * time.Hour)
	oldest := time.Date(now.Year()-5, time.January, 1, 0, 0, 0, 0, time.UTC)

	var findings []Finding
	for _, t := range transactions {
		switch {
		case t.Date.IsZero() || t.DateUnparsed:
			findings = append(findings, Finding{
				Kind:          KindInvalidDate,
				TransactionID: t.ID,
				Message:       "date missing or substituted at import",
			})
		case t.Date.After(future):
			findings = append(findings, Finding{
				Kind:          KindFutureDate,
				TransactionID: t.ID,
				Message:       "date is in the future",
			})
		case t.Date.Before(oldest):
			findings = append(findings, Finding{
				Kind:          KindOldDate,
				TransactionID: t.ID,
				Message:       "date is more than five years old",
			})
		}
	}
	return findings
}

// BalanceAnomalies flags transactions with neither amount set and
// transactions with both amounts set.
func BalanceAnomalies(transactions []*model.Transaction) []Finding {
	var findings []Finding
	for _, t := range transactions {
		in := t.AmountIn.IsPositive()
		out := t.AmountOut.IsPositive()
		switch {
		case !in && !out:
			findings = append(findings, Finding{
				Kind:          KindZeroAmount,
				TransactionID: t.ID,
				Message:       "transaction has no amount",
			})
		case in && out:
			findings = append(findings, Finding{
				Kind:          KindDoubleAmount,
				TransactionID: t.ID,
				Message:       "transaction has both inflow and outflow",
			})
		}
	}
	return findings
}
