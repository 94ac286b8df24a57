package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxo-dev/fluxo/internal/chart"
	"github.com/fluxo-dev/fluxo/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")

	tx := &model.Transaction{
		ID:          "tx-1",
		Description: "Consultoria",
		Payee:       "Acme Ltda",
		Bank:        "Itaú",
		AmountIn:    decimal.RequireFromString("1234.56"),
		Classification: model.Classification{
			Level1: "RECEITAS OPERACIONAIS",
			Level2: "Receitas de Serviços",
			Level3: "Consultoria",
		},
		CostCenter: "Comercial",
		Status:     model.StatusReconciled,
		Notes:      "projeto X",
		Reference:  "NF 101",
	}
	tx.SetDate(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))

	guessed := &model.Transaction{
		ID:           "tx-2",
		Description:  "data ilegível",
		AmountOut:    decimal.RequireFromString("0.01"),
		Status:       model.StatusPending,
		DateUnparsed: true,
	}
	guessed.SetDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	original := &model.AppState{
		Transactions: []*model.Transaction{tx, guessed},
		Chart:        chart.Default(),
		Settings: model.Settings{
			ProjectionMethod: "trend",
			ProjectionMonths: 12,
			AIModel:          "gemini-2.0-flash",
		},
	}

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Len(t, loaded.Transactions, 2)
	got := loaded.Transactions[0]
	assert.Equal(t, "tx-1", got.ID)
	assert.Equal(t, "Consultoria", got.Description)
	assert.True(t, got.AmountIn.Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, got.AmountOut.IsZero())
	assert.Equal(t, "RECEITAS OPERACIONAIS", got.Classification.Level1)
	assert.Equal(t, "Consultoria", got.Classification.Level3)
	assert.Equal(t, model.StatusReconciled, got.Status)
	assert.Equal(t, "2024-05", got.MonthBucket)
	assert.True(t, got.Date.Equal(tx.Date))

	assert.True(t, loaded.Transactions[1].DateUnparsed)
	assert.Equal(t, model.StatusPending, loaded.Transactions[1].Status)

	assert.Equal(t, original.Chart, loaded.Chart)
	assert.Equal(t, original.Settings, loaded.Settings)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"9.0"}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported state version")
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{
  "version": "1.0",
  "transactions": [
    {"id": "a", "date": "2024-01-02T00:00:00Z", "description": "Venda", "amount_in": "10"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	state, err := Load(path)
	require.NoError(t, err)

	require.Len(t, state.Transactions, 1)
	assert.Equal(t, model.StatusPending, state.Transactions[0].Status)
	assert.Equal(t, "2024-01", state.Transactions[0].MonthBucket)
	assert.Equal(t, model.DefaultSettings(), state.Settings)
	assert.Empty(t, state.Chart.Groups)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
