package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxo-dev/fluxo/internal/chart"
	"github.com/fluxo-dev/fluxo/internal/model"
)

func defaultChart(t *testing.T) *chart.Service {
	t.Helper()
	c := chart.Default()
	return chart.NewService(&c)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSetLevel1_ClearsLowerLevels(t *testing.T) {
	c := model.Classification{
		Level1: "1.0 RECEITAS OPERACIONAIS",
		Level2: "1.1 Receita de Vendas/Serviços",
		Level3: "1.1.2 Prestação de Serviços",
	}
	SetLevel1(&c, "2.0 CUSTOS E DESPESAS OPERACIONAIS")
	assert.Equal(t, "2.0 CUSTOS E DESPESAS OPERACIONAIS", c.Level1)
	assert.Empty(t, c.Level2)
	assert.Empty(t, c.Level3)
}

func TestSetLevel1_SameValueKeepsLowerLevels(t *testing.T) {
	c := model.Classification{
		Level1: "1.0 RECEITAS OPERACIONAIS",
		Level2: "1.1 Receita de Vendas/Serviços",
	}
	SetLevel1(&c, "1.0 RECEITAS OPERACIONAIS")
	assert.Equal(t, "1.1 Receita de Vendas/Serviços", c.Level2)
}

func TestValidate(t *testing.T) {
	s := defaultChart(t)

	txn := &model.Transaction{Classification: model.Classification{
		Level1: "1.0 RECEITAS OPERACIONAIS",
		Level2: "1.1 Receita de Vendas/Serviços",
		Level3: "1.1.2 Prestação de Serviços",
	}}
	assert.True(t, Validate(txn, s).OK)

	// Unclassified is fine.
	assert.True(t, Validate(&model.Transaction{}, s).OK)

	// Orphan lower level.
	txn = &model.Transaction{Classification: model.Classification{Level2: "1.1 Receita de Vendas/Serviços"}}
	v := Validate(txn, s)
	assert.False(t, v.OK)
	assert.Contains(t, v.Reason, "no level 1")

	// Level 3 under the wrong branch.
	txn = &model.Transaction{Classification: model.Classification{
		Level1: "1.0 RECEITAS OPERACIONAIS",
		Level2: "1.1 Receita de Vendas/Serviços",
		Level3: "2.3.1 Aluguel e Condomínio",
	}}
	assert.False(t, Validate(txn, s).OK)
}

func TestReconcile(t *testing.T) {
	s := defaultChart(t)
	txn := &model.Transaction{Status: model.StatusPending}

	err := Reconcile(txn, s, model.Classification{
		Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
		Level2: "2.3 Despesas Administrativas",
		Level3: "2.3.1 Aluguel e Condomínio",
	}, "MATRIZ", "Contrato 2024-15", "aluguel mensal")
	require.NoError(t, err)

	assert.Equal(t, model.StatusReconciled, txn.Status)
	assert.Equal(t, "MATRIZ", txn.CostCenter)
	assert.Equal(t, "Contrato 2024-15", txn.Reference)

	bad := Reconcile(txn, s, model.Classification{Level1: "9.9 INEXISTENTE"}, "", "", "")
	assert.Error(t, bad)
	// A failed reconcile leaves the transaction untouched.
	assert.Equal(t, "2.3 Despesas Administrativas", txn.Classification.Level2)
}

func TestSuggest_InflowAndOutflow(t *testing.T) {
	rules := DefaultRules()

	in := &model.Transaction{Description: "Prestação de serviços de CONSULTORIA", AmountIn: dec("2500")}
	triple, ok := Suggest(in, rules)
	require.True(t, ok)
	assert.Equal(t, "1.1.2 Prestação de Serviços", triple.Level3)

	out := &model.Transaction{Description: "Aluguel do escritório - janeiro", AmountOut: dec("1200")}
	triple, ok = Suggest(out, rules)
	require.True(t, ok)
	// First matching rule wins: "aluguel" matches before "escritório".
	assert.Equal(t, "2.3.1 Aluguel e Condomínio", triple.Level3)

	none := &model.Transaction{Description: "Pix recebido", AmountIn: dec("10")}
	_, ok = Suggest(none, rules)
	assert.False(t, ok)
}

func TestSuggest_SignBranchesBeforeKeywords(t *testing.T) {
	// "venda" appears, but an outflow never matches inflow rules.
	out := &model.Transaction{Description: "estorno de venda", AmountOut: dec("50")}
	_, ok := Suggest(out, DefaultRules())
	assert.False(t, ok)
}

func TestDuplicateLastClassification_CollectionOrderWins(t *testing.T) {
	older := &model.Transaction{
		ID:     "a",
		Status: model.StatusReconciled,
		Classification: model.Classification{
			Level1: "1.0 RECEITAS OPERACIONAIS",
			Level2: "1.1 Receita de Vendas/Serviços",
		},
		CostCenter: "COMERCIAL",
	}
	// Later in the collection but with an earlier date: still wins.
	newerInOrder := &model.Transaction{
		ID:     "b",
		Status: model.StatusReconciled,
		Classification: model.Classification{
			Level1: "2.0 CUSTOS E DESPESAS OPERACIONAIS",
			Level2: "2.3 Despesas Administrativas",
			Level3: "2.3.1 Aluguel e Condomínio",
		},
		CostCenter: "MATRIZ",
	}
	pending := &model.Transaction{ID: "c", Status: model.StatusPending}

	target := &model.Transaction{ID: "d"}
	ok := DuplicateLastClassification(target, []*model.Transaction{older, newerInOrder, pending, target})
	require.True(t, ok)
	assert.Equal(t, "2.3.1 Aluguel e Condomínio", target.Classification.Level3)
	assert.Equal(t, "MATRIZ", target.CostCenter)
}

func TestDuplicateLastClassification_NoReconciled(t *testing.T) {
	target := &model.Transaction{ID: "x"}
	ok := DuplicateLastClassification(target, []*model.Transaction{target})
	assert.False(t, ok)
	assert.True(t, target.Classification.IsEmpty())
}
