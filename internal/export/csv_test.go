package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/report"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestTransactions_FourteenColumns(t *testing.T) {
	txn := &model.Transaction{
		ID:          "x",
		Description: "Aluguel, janeiro",
		Payee:       "Imobiliária Santos",
		Bank:        "Itaú",
		AmountIn:    decimal.Zero,
		AmountOut:   dec("1234.5"),
		Classification: model.Classification{
			Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
			Level2: "2.3 Despesas Administrativas",
			Level3: "2.3.1 Aluguel e Condomínio",
		},
		CostCenter: "MATRIZ",
		Status:     model.StatusReconciled,
		Reference:  "Contrato 2024-15",
	}
	txn.SetDate(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Transactions(&buf, []*model.Transaction{txn}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[0], 14)
	assert.Equal(t, "Data", records[0][0])
	assert.Equal(t, "Mês", records[0][13])

	row := records[1]
	assert.Equal(t, "2025-01-20", row[0])
	assert.Equal(t, "Aluguel, janeiro", row[1])
	assert.Equal(t, "1234.50", row[4])
	assert.Equal(t, "Conciliado", row[10])
	assert.Equal(t, "2025-01", row[13])
}

func TestTransactions_PendingLabel(t *testing.T) {
	txn := &model.Transaction{ID: "p", Description: "x", AmountIn: dec("1")}
	txn.SetDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Transactions(&buf, []*model.Transaction{txn}))
	assert.Contains(t, buf.String(), "Pendente")
}

func TestDRE_RowsAndPercentages(t *testing.T) {
	d := report.ComputeDRE([]*model.Transaction{
		{AmountIn: dec("1000"), Status: model.StatusReconciled,
			Classification: model.Classification{Level1: "1.0 RECEITAS OPERACIONAIS"}},
		{AmountOut: dec("400"), Status: model.StatusReconciled,
			Classification: model.Classification{Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS", Level2: "2.3 Despesas Administrativas"}},
	})

	var buf bytes.Buffer
	require.NoError(t, DRE(&buf, d))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 6)
	assert.Equal(t, []string{"Linha", "Valor", "% Receita"}, records[0])
	assert.Equal(t, []string{"Receitas Operacionais", "1000.00", "100.00"}, records[1])
	assert.Equal(t, []string{"Custos e Despesas Operacionais", "-400.00", "40.00"}, records[2])
	assert.Equal(t, []string{"Resultado Operacional", "600.00", "60.00"}, records[3])

	// Expense category detail rows follow the summary block.
	last := records[len(records)-1]
	assert.Equal(t, "  2.3 Despesas Administrativas", last[0])
	assert.Equal(t, "-400.00", last[1])
}

func TestCashFlow_AccumulatedBalance(t *testing.T) {
	buckets := []report.MonthlyBucket{
		{Month: "2025-01", Revenue: dec("100"), Expenses: dec("60")},
		{Month: "2025-02", Revenue: dec("50"), Expenses: dec("80")},
	}

	var buf bytes.Buffer
	require.NoError(t, CashFlow(&buf, buckets))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2025-01,100.00,60.00,40.00,40.00", lines[1])
	assert.Equal(t, "2025-02,50.00,80.00,-30.00,10.00", lines[2])
}
