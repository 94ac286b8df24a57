package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// MonthlyBucket holds the summed movement for one "YYYY-MM" bucket.
type MonthlyBucket struct {
	Month    string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
}

// Result returns revenue minus expenses for the bucket.
func (b MonthlyBucket) Result() decimal.Decimal {
	return b.Revenue.Sub(b.Expenses)
}

// GroupByMonth sums transactions into month buckets, ordered by bucket key.
// Lexicographic order of "YYYY-MM" is chronological order.
func GroupByMonth(transactions []*model.Transaction) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	for _, t := range transactions {
		month := t.MonthBucket
		if month == "" {
			month = model.FormatMonthBucket(t.Date)
		}
		b, ok := byMonth[month]
		if !ok {
			b = &MonthlyBucket{Month: month, Revenue: decimal.Zero, Expenses: decimal.Zero}
			byMonth[month] = b
		}
		b.Revenue = b.Revenue.Add(t.AmountIn)
		b.Expenses = b.Expenses.Add(t.AmountOut)
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })
	return buckets
}
