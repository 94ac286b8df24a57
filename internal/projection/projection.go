// Package projection derives forward-looking monthly estimates from the
// aggregated transaction history.
package projection

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/report"
)

// Method selects the estimation strategy for one projection run.
type Method string

const (
	MethodAverage  Method = "average"
	MethodTrend    Method = "trend"
	MethodSeasonal Method = "seasonal"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodAverage, MethodTrend, MethodSeasonal:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown projection method %q", s)
	}
}

// DefaultMonths is how far ahead a run projects unless configured otherwise.
const DefaultMonths = 6

// MinHistory is the hard floor of monthly history a run needs.
const MinHistory = 2

// reliableHistory is the history length below which results are flagged as
// low-confidence in aggregate.
const reliableHistory = 3

// Month is one projected future month. Accumulated is the running sum of
// results across the projected sequence, never reset.
type Month struct {
	Month       string
	Revenue     decimal.Decimal
	Expenses    decimal.Decimal
	Result      decimal.Decimal
	Accumulated decimal.Decimal
	Confidence  float64
}

// Projection is the output of one run.
type Projection struct {
	Method   Method
	Months   []Month
	Reliable bool // false when history is shorter than three months
}

// Jitter supplies the pseudo-random variation applied to projected values.
// Tests inject None for determinism.
type Jitter interface {
	// Factor returns a multiplier centered on 1.
	Factor() float64
}

type randJitter struct {
	r *rand.Rand
}

// Symmetric ±2.5% window.
const jitterSpread = 0.05

func (j randJitter) Factor() float64 {
	return 1 + (j.r.Float64()-0.5)*jitterSpread
}

// NewJitter returns the default randomized jitter.
func NewJitter(seed int64) Jitter {
	return randJitter{r: rand.New(rand.NewSource(seed))}
}

type noJitter struct{}

func (noJitter) Factor() float64 { return 1 }

// None returns a jitter that leaves values unchanged.
func None() Jitter { return noJitter{} }

// Project estimates the next n months from monthly history using the given
// method. History must hold at least MinHistory months and must be in
// chronological bucket order, as report.GroupByMonth produces it.
func Project(history []report.MonthlyBucket, n int, method Method, jit Jitter) (Projection, error) {
	if len(history) < MinHistory {
		return Projection{}, fmt.Errorf("projection needs at least %d months of history, have %d", MinHistory, len(history))
	}
	if n <= 0 {
		n = DefaultMonths
	}
	if jit == nil {
		jit = None()
	}

	last, err := time.Parse("2006-01", history[len(history)-1].Month)
	if err != nil {
		return Projection{}, fmt.Errorf("parsing last history bucket %q: %w", history[len(history)-1].Month, err)
	}

	p := Projection{Method: method, Reliable: len(history) >= reliableHistory}
	accumulated := decimal.Zero

	for step := 1; step <= n; step++ {
		target := last.AddDate(0, step, 0)

		var revenue, expenses decimal.Decimal
		var confidence float64

		switch method {
		case MethodTrend:
			revenue, expenses = trend(history, step)
			confidence = clampConfidence(0.9-float64(step)*0.1, 0.3)
		case MethodSeasonal:
			revenue, expenses = seasonal(history, target.Month())
			confidence = clampConfidence(0.8-float64(step)*0.05, 0.4)
		default:
			revenue, expenses = trailingMean(history, 6)
			confidence = clampConfidence(0.85-float64(step)*0.08, 0.5)
		}

		revenue = clampZero(applyJitter(revenue, jit))
		expenses = clampZero(applyJitter(expenses, jit))
		result := revenue.Sub(expenses)
		accumulated = accumulated.Add(result)

		p.Months = append(p.Months, Month{
			Month:       target.Format("2006-01"),
			Revenue:     revenue,
			Expenses:    expenses,
			Result:      result,
			Accumulated: accumulated,
			Confidence:  confidence,
		})
	}
	return p, nil
}

func clampConfidence(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func applyJitter(d decimal.Decimal, jit Jitter) decimal.Decimal {
	return d.Mul(decimal.NewFromFloat(jit.Factor()))
}

// trailingMean averages revenue and expenses over the last min(n, len)
// months.
func trailingMean(history []report.MonthlyBucket, n int) (decimal.Decimal, decimal.Decimal) {
	if n > len(history) {
		n = len(history)
	}
	window := history[len(history)-n:]
	return meanOf(window)
}

// trend extrapolates linearly: the slope is the difference between the mean
// of the most recent three months and the mean of the earliest three,
// divided by three, added per step to the recent mean.
func trend(history []report.MonthlyBucket, step int) (decimal.Decimal, decimal.Decimal) {
	n := 3
	if n > len(history) {
		n = len(history)
	}
	recentRev, recentExp := meanOf(history[len(history)-n:])
	oldRev, oldExp := meanOf(history[:n])

	three := decimal.NewFromInt(3)
	steps := decimal.NewFromInt(int64(step))

	revSlope := recentRev.Sub(oldRev).Div(three)
	expSlope := recentExp.Sub(oldExp).Div(three)

	return recentRev.Add(revSlope.Mul(steps)), recentExp.Add(expSlope.Mul(steps))
}

// seasonal averages the historical months sharing the target's calendar
// month, falling back to the 6-month trailing mean when none exist.
func seasonal(history []report.MonthlyBucket, target time.Month) (decimal.Decimal, decimal.Decimal) {
	var similar []report.MonthlyBucket
	for _, b := range history {
		d, err := time.Parse("2006-01", b.Month)
		if err != nil {
			continue
		}
		if d.Month() == target {
			similar = append(similar, b)
		}
	}
	if len(similar) == 0 {
		return trailingMean(history, 6)
	}
	return meanOf(similar)
}

func meanOf(buckets []report.MonthlyBucket) (decimal.Decimal, decimal.Decimal) {
	revenue := decimal.Zero
	expenses := decimal.Zero
	for _, b := range buckets {
		revenue = revenue.Add(b.Revenue)
		expenses = expenses.Add(b.Expenses)
	}
	count := decimal.NewFromInt(int64(len(buckets)))
	return revenue.Div(count), expenses.Div(count)
}
