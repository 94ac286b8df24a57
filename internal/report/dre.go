package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Level-1 buckets are recognized by substring so numbering-prefix variants
// like "1.0 RECEITAS OPERACIONAIS" and renamed charts keeping the prefix
// still land in the right DRE line.
var (
	revenueMarkers   = []string{"RECEITAS OPERACIONAIS", "1.0"}
	expenseMarkers   = []string{"CUSTOS E DESPESAS OPERACIONAIS", "2.0"}
	financialMarkers = []string{"RESULTADO FINANCEIRO", "3.0"}
)

// DRE is the income-statement view over reconciled transactions.
type DRE struct {
	Revenue         decimal.Decimal
	Expenses        decimal.Decimal
	FinancialResult decimal.Decimal

	RevenueByCategory  map[string]decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal

	GrossMargin       decimal.Decimal
	OperationalMargin decimal.Decimal
	NetMargin         decimal.Decimal
}

// OperatingResult returns revenue minus operating expenses.
func (d DRE) OperatingResult() decimal.Decimal {
	return d.Revenue.Sub(d.Expenses)
}

// NetResult returns the operating result plus the financial result.
func (d DRE) NetResult() decimal.Decimal {
	return d.OperatingResult().Add(d.FinancialResult)
}

func matchesAny(level1 string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(level1, m) {
			return true
		}
	}
	return false
}

// ComputeDRE builds the DRE over reconciled transactions only. The by-
// category maps break revenue and expenses down by level-2 name, falling
// back to level 1 when level 2 is empty.
func ComputeDRE(transactions []*model.Transaction) DRE {
	d := DRE{
		Revenue:            decimal.Zero,
		Expenses:           decimal.Zero,
		FinancialResult:    decimal.Zero,
		RevenueByCategory:  make(map[string]decimal.Decimal),
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if !t.IsReconciled() {
			continue
		}
		level1 := t.Classification.Level1
		category := t.Classification.Level2
		if strings.TrimSpace(category) == "" {
			category = level1
		}

		switch {
		case matchesAny(level1, revenueMarkers):
			d.Revenue = d.Revenue.Add(t.AmountIn)
			d.RevenueByCategory[category] = d.RevenueByCategory[category].Add(t.AmountIn)
		case matchesAny(level1, expenseMarkers):
			d.Expenses = d.Expenses.Add(t.AmountOut)
			d.ExpensesByCategory[category] = d.ExpensesByCategory[category].Add(t.AmountOut)
		case matchesAny(level1, financialMarkers):
			d.FinancialResult = d.FinancialResult.Add(t.AmountIn.Sub(t.AmountOut))
		}
	}

	// Direct costs are not split out from operating expenses, so the gross
	// and operational margins share one formula.
	if d.Revenue.IsPositive() {
		operating := d.OperatingResult().Div(d.Revenue)
		d.GrossMargin = operating
		d.OperationalMargin = operating
		d.NetMargin = d.NetResult().Div(d.Revenue)
	} else {
		d.GrossMargin = decimal.Zero
		d.OperationalMargin = decimal.Zero
		d.NetMargin = decimal.Zero
	}
	return d
}
