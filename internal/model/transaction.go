package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus represents the lifecycle state of a transaction.
type ReconciliationStatus string

const (
	StatusPending    ReconciliationStatus = "pending"
	StatusReconciled ReconciliationStatus = "reconciled"
)

// Classification is the typed (level1, level2, level3) account path assigned
// to a transaction. Lower levels are meaningful only when every level above
// them is set.
type Classification struct {
	Level1 string
	Level2 string
	Level3 string
}

// IsEmpty reports whether no level is set.
func (c Classification) IsEmpty() bool {
	return strings.TrimSpace(c.Level1) == "" &&
		strings.TrimSpace(c.Level2) == "" &&
		strings.TrimSpace(c.Level3) == ""
}

// Depth returns how many leading levels are set (0-3).
func (c Classification) Depth() int {
	switch {
	case strings.TrimSpace(c.Level1) == "":
		return 0
	case strings.TrimSpace(c.Level2) == "":
		return 1
	case strings.TrimSpace(c.Level3) == "":
		return 2
	default:
		return 3
	}
}

// Transaction is one normalized bank movement. Amounts are kept as a
// non-negative in/out pair; a healthy transaction has exactly one of the two
// positive, but that is an audit finding rather than a hard invariant.
type Transaction struct {
	ID             string
	Date           time.Time
	Description    string
	Payee          string
	Bank           string
	AmountIn       decimal.Decimal
	AmountOut      decimal.Decimal
	Classification Classification
	CostCenter     string
	Status         ReconciliationStatus
	Notes          string
	Reference      string
	MonthBucket    string // "YYYY-MM", derived from Date

	// DateUnparsed marks transactions whose raw date could not be parsed
	// and was substituted with the import date. The audit engine surfaces
	// these instead of letting them silently distort monthly aggregation.
	DateUnparsed bool
}

// SetDate updates the date and recomputes the month bucket.
func (t *Transaction) SetDate(d time.Time) {
	t.Date = d
	t.MonthBucket = FormatMonthBucket(d)
}

// MaxAmount returns the larger of the in/out amounts.
func (t Transaction) MaxAmount() decimal.Decimal {
	if t.AmountIn.GreaterThanOrEqual(t.AmountOut) {
		return t.AmountIn
	}
	return t.AmountOut
}

// IsReconciled reports whether the transaction has been reconciled.
func (t Transaction) IsReconciled() bool {
	return t.Status == StatusReconciled
}

// FormatMonthBucket returns the "YYYY-MM" aggregation key for a date.
func FormatMonthBucket(d time.Time) string {
	return d.Format("2006-01")
}
