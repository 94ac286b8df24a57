// Package export renders the data model into the fixed CSV layouts consumed
// downstream: the normalized transaction sheet, the DRE and the cash-flow
// statement. Amounts are written with two decimals and no thousands
// separators.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/report"
)

// transactionHeader is the fixed 14-column layout of the normalized export.
var transactionHeader = []string{
	"Data",
	"Descrição Original",
	"Favorecido / Pagador Padronizado",
	"Entrada (R$)",
	"Saída (R$)",
	"Banco Origem/Destino",
	"Classificação Nível 1",
	"Classificação Nível 2",
	"Classificação Nível 3",
	"Centro de Custo",
	"Status Conciliação",
	"Notas",
	"Contrato/Nota?",
	"Mês",
}

const dateLayout = "2006-01-02"

func statusLabel(s model.ReconciliationStatus) string {
	if s == model.StatusReconciled {
		return "Conciliado"
	}
	return "Pendente"
}

// Transactions writes the normalized 14-column sheet.
func Transactions(w io.Writer, transactions []*model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range transactions {
		row := []string{
			t.Date.Format(dateLayout),
			t.Description,
			t.Payee,
			t.AmountIn.StringFixed(2),
			t.AmountOut.StringFixed(2),
			t.Bank,
			t.Classification.Level1,
			t.Classification.Level2,
			t.Classification.Level3,
			t.CostCenter,
			statusLabel(t.Status),
			t.Notes,
			t.Reference,
			t.MonthBucket,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func percentOf(part, total decimal.Decimal) string {
	if !total.IsPositive() {
		return "0.00"
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// DRE writes the income statement as label/amount/percent-of-revenue rows.
func DRE(w io.Writer, d report.DRE) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Linha", "Valor", "% Receita"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rows := [][]string{
		{"Receitas Operacionais", d.Revenue.StringFixed(2), percentOf(d.Revenue, d.Revenue)},
		{"Custos e Despesas Operacionais", d.Expenses.Neg().StringFixed(2), percentOf(d.Expenses, d.Revenue)},
		{"Resultado Operacional", d.OperatingResult().StringFixed(2), percentOf(d.OperatingResult(), d.Revenue)},
		{"Resultado Financeiro", d.FinancialResult.StringFixed(2), percentOf(d.FinancialResult, d.Revenue)},
		{"Resultado Líquido", d.NetResult().StringFixed(2), percentOf(d.NetResult(), d.Revenue)},
	}
	for _, category := range sortedKeys(d.ExpensesByCategory) {
		amount := d.ExpensesByCategory[category]
		rows = append(rows, []string{"  " + category, amount.Neg().StringFixed(2), percentOf(amount, d.Revenue)})
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing DRE row: %w", err)
		}
	}
	return cw.Error()
}

// CashFlow writes monthly buckets with a running accumulated balance.
func CashFlow(w io.Writer, buckets []report.MonthlyBucket) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Mês", "Receitas", "Despesas", "Resultado", "Acumulado"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	accumulated := decimal.Zero
	for _, b := range buckets {
		accumulated = accumulated.Add(b.Result())
		row := []string{
			b.Month,
			b.Revenue.StringFixed(2),
			b.Expenses.StringFixed(2),
			b.Result().StringFixed(2),
			accumulated.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing cash flow row: %w", err)
		}
	}
	return cw.Error()
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
