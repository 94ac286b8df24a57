package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxo-dev/fluxo/internal/model"
)

type stubGenerator struct {
	answer string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, s.err
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "-R$ 12.345.678,90", FormatBRL(decimal.RequireFromString("-12345678.90")))
	assert.Equal(t, "R$ 999,99", FormatBRL(decimal.RequireFromString("999.99")))
}

func TestBuildFinancialContext(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	state := &model.AppState{
		Transactions: []*model.Transaction{
			{ID: "a", Description: "Venda", AmountIn: decimal.RequireFromString("1000")},
			{
				ID:             "b",
				Description:    "Aluguel",
				AmountOut:      decimal.RequireFromString("400"),
				Classification: model.Classification{Level1: "CUSTOS E DESPESAS OPERACIONAIS"},
				Status:         model.StatusReconciled,
			},
		},
	}
	for _, tr := range state.Transactions {
		tr.SetDate(date)
	}

	text := BuildFinancialContext(state)

	assert.Contains(t, text, "Total de Transações: 2")
	assert.Contains(t, text, "Receitas Totais: R$ 1.000,00")
	assert.Contains(t, text, "Despesas Totais: R$ 400,00")
	assert.Contains(t, text, "Resultado Líquido: R$ 600,00")
	assert.Contains(t, text, "Transações Pendentes: 1")
	assert.Contains(t, text, "- CUSTOS E DESPESAS OPERACIONAIS: R$ 400,00")
	assert.Contains(t, text, "- 2024-03: Receitas R$ 1.000,00, Despesas R$ 400,00, Resultado R$ 600,00")
	assert.Contains(t, text, "Margem: 60.0%")
	assert.Contains(t, text, "Ticket Médio: R$ 500,00")
}

func TestBuildFinancialContextEmpty(t *testing.T) {
	text := BuildFinancialContext(&model.AppState{})
	assert.Contains(t, text, "Total de Transações: 0")
	assert.Contains(t, text, "Nenhuma categoria classificada")
	assert.Contains(t, text, "Dados mensais indisponíveis")
	assert.Contains(t, text, "Margem: 0.0%")
}

func TestAsk(t *testing.T) {
	gen := &stubGenerator{answer: "A margem está saudável."}
	client := NewClient(gen, time.Second)

	answer, err := client.Ask(context.Background(), "RESUMO", "Como está a margem?")
	require.NoError(t, err)
	assert.Equal(t, "A margem está saudável.", answer)
	assert.Contains(t, gen.prompt, "RESUMO")
	assert.Contains(t, gen.prompt, "PERGUNTA: Como está a margem?")
}

func TestAskEmptyQuestion(t *testing.T) {
	client := NewClient(&stubGenerator{answer: "x"}, time.Second)
	_, err := client.Ask(context.Background(), "RESUMO", "   ")
	assert.Error(t, err)
}

func TestAskEmptyResponse(t *testing.T) {
	client := NewClient(&stubGenerator{answer: "  "}, time.Second)
	_, err := client.Ask(context.Background(), "RESUMO", "pergunta")
	assert.Error(t, err)
}

func TestAskGeneratorError(t *testing.T) {
	client := NewClient(&stubGenerator{err: errors.New("quota")}, time.Second)
	_, err := client.Ask(context.Background(), "RESUMO", "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}
