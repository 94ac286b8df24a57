package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Padaria Sol")
	cfg.Projection.Method = "seasonal"
	cfg.Projection.Months = 12
	cfg.Storage.StatePath = "data/state.json"

	path := filepath.Join(t.TempDir(), "fluxo.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, cfg.Business.Currency, got.Business.Currency)
	assert.Equal(t, "data/state.json", got.Storage.StatePath)
	assert.Equal(t, "seasonal", got.Projection.Method)
	assert.Equal(t, 12, got.Projection.Months)
	assert.Equal(t, cfg.AI.Model, got.AI.Model)
	assert.Equal(t, cfg.AI.TimeoutSeconds, got.AI.TimeoutSeconds)
	assert.Equal(t, cfg.Cache.KPISeconds, got.Cache.KPISeconds)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Minha Empresa")

	assert.Equal(t, "Minha Empresa", cfg.Business.Name)
	assert.Equal(t, "BRL", cfg.Business.Currency)
	assert.Equal(t, "fluxo-state.json", cfg.Storage.StatePath)
	assert.Equal(t, "average", cfg.Projection.Method)
	assert.Equal(t, 6, cfg.Projection.Months)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 30, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Cache.KPISeconds)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Padaria Sol")
	path := filepath.Join(t.TempDir(), "fluxo.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Padaria Sol")
	assert.Contains(t, contents, "currency: BRL")
	assert.Contains(t, contents, "state_path: fluxo-state.json")
	assert.Contains(t, contents, "method: average")
	assert.Contains(t, contents, "model: gemini-2.0-flash")
}
