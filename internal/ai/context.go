// Package ai builds the textual financial context handed to the external
// assistant and wraps the outbound model call. The assistant's reply is
// opaque display text; nothing structured is parsed back.
package ai

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/report"
)

// contextMonths is how many recent months the summary includes.
const contextMonths = 3

// topCategories is how many expense categories the summary ranks.
const topCategories = 5

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), fracPart)
}

// BuildFinancialContext produces the compact summary that, together with the
// user's question, is the entire payload sent to the assistant: headline
// totals, top expense categories, the last months and two derived ratios.
func BuildFinancialContext(state *model.AppState) string {
	kpis := report.ComputeKPIs(state.Transactions)
	buckets := report.GroupByMonth(state.Transactions)
	expenses := report.GroupByCategory(state.Transactions, 1)

	pending := 0
	for _, t := range state.Transactions {
		if !t.IsReconciled() {
			pending++
		}
	}

	var b strings.Builder
	b.WriteString("RESUMO FINANCEIRO:\n")
	fmt.Fprintf(&b, "- Total de Transações: %d\n", kpis.Count)
	fmt.Fprintf(&b, "- Receitas Totais: %s\n", FormatBRL(kpis.TotalRevenue))
	fmt.Fprintf(&b, "- Despesas Totais: %s\n", FormatBRL(kpis.TotalExpenses))
	fmt.Fprintf(&b, "- Resultado Líquido: %s\n", FormatBRL(kpis.NetResult))
	fmt.Fprintf(&b, "- Transações Pendentes: %d\n", pending)

	b.WriteString("\nPRINCIPAIS CATEGORIAS DE DESPESA:\n")
	top := report.TopCategories(expenses, topCategories)
	if len(top) == 0 {
		b.WriteString("Nenhuma categoria classificada\n")
	}
	for _, c := range top {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, FormatBRL(c.Total))
	}

	fmt.Fprintf(&b, "\nHISTÓRICO MENSAL (últimos %d meses):\n", contextMonths)
	start := len(buckets) - contextMonths
	if start < 0 {
		start = 0
	}
	recent := buckets[start:]
	if len(recent) == 0 {
		b.WriteString("Dados mensais indisponíveis\n")
	}
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		fmt.Fprintf(&b, "- %s: Receitas %s, Despesas %s, Resultado %s\n",
			m.Month, FormatBRL(m.Revenue), FormatBRL(m.Expenses), FormatBRL(m.Result()))
	}

	b.WriteString("\nANÁLISE:\n")
	margin := decimal.Zero
	ticket := decimal.Zero
	if kpis.TotalRevenue.IsPositive() {
		margin = kpis.NetResult.Div(kpis.TotalRevenue).Mul(decimal.NewFromInt(100))
	}
	if kpis.Count > 0 {
		ticket = kpis.TotalRevenue.Div(decimal.NewFromInt(int64(kpis.Count)))
	}
	fmt.Fprintf(&b, "- Margem: %s%%\n", margin.StringFixed(1))
	fmt.Fprintf(&b, "- Ticket Médio: %s\n", FormatBRL(ticket))

	return b.String()
}
