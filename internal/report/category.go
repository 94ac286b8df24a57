package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Unclassified is the synthetic bucket for transactions without a
// classification at the requested level.
const Unclassified = "Unclassified"

// GroupByCategory sums expenses (amount_out only) per classification name at
// the given level (1-3). Transactions missing that level fall into the
// Unclassified bucket.
func GroupByCategory(transactions []*model.Transaction, level int) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if !t.AmountOut.IsPositive() {
			continue
		}
		name := categoryAt(t.Classification, level)
		if strings.TrimSpace(name) == "" {
			name = Unclassified
		}
		totals[name] = totals[name].Add(t.AmountOut)
	}
	return totals
}

func categoryAt(c model.Classification, level int) string {
	switch level {
	case 3:
		return c.Level3
	case 2:
		return c.Level2
	default:
		return c.Level1
	}
}

// CategoryTotal is one row of a ranked category breakdown.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// TopCategories returns the n largest expense categories, descending by
// total with name as tie-break.
func TopCategories(totals map[string]decimal.Decimal, n int) []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		rows = append(rows, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Name < rows[j].Name
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
