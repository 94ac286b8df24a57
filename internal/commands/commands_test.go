package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxo-dev/fluxo/internal/commands"
	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/store"
)

// runFluxo executes the CLI in-process and returns its combined output.
func runFluxo(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := commands.NewRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// initDir initializes a data directory and returns the config and state paths.
func initDir(t *testing.T, extra ...string) (dir, cfgPath, statePath string) {
	t.Helper()
	dir = t.TempDir()
	args := append([]string{"init", dir, "--name", "Teste Ltda"}, extra...)
	_, err := runFluxo(t, args...)
	require.NoError(t, err)
	return dir, filepath.Join(dir, "fluxo.yaml"), filepath.Join(dir, "fluxo-state.json")
}

func TestInitCreatesFiles(t *testing.T) {
	dir, cfgPath, statePath := initDir(t)

	_, err := os.Stat(cfgPath)
	require.NoError(t, err, "fluxo.yaml should exist")

	state, err := store.Load(statePath)
	require.NoError(t, err)
	assert.Empty(t, state.Transactions)
	assert.Len(t, state.Chart.Groups, 4, "default chart has four groups")
	assert.Equal(t, model.DefaultSettings(), state.Settings)
	_ = dir
}

func TestInitExampleSeedsTransactions(t *testing.T) {
	_, _, statePath := initDir(t, "--example")

	state, err := store.Load(statePath)
	require.NoError(t, err)
	assert.Len(t, state.Transactions, 8)

	reconciled := 0
	for _, tr := range state.Transactions {
		if tr.IsReconciled() {
			reconciled++
		}
	}
	assert.Equal(t, 7, reconciled, "one seeded transaction stays pending")
}

func TestInitRequiresName(t *testing.T) {
	_, err := runFluxo(t, "init", t.TempDir())
	require.Error(t, err)
}

func TestImportAndKPI(t *testing.T) {
	dir, cfgPath, statePath := initDir(t)

	csvPath := filepath.Join(dir, "extrato.csv")
	content := "Data,Descrição,Entrada,Saída\n" +
		"15/01/2024,Venda de serviço,\"1.500,00\",\n" +
		"20/01/2024,Aluguel,,\"800,00\"\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions")

	out, err = runFluxo(t, "--config", cfgPath, "--state", statePath, "report", "kpi")
	require.NoError(t, err)
	assert.Contains(t, out, "Total revenue:  1500.00")
	assert.Contains(t, out, "Total expenses: 800.00")
	assert.Contains(t, out, "Net result:     700.00")
}

func TestImportRejectsMissingState(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "extrato.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Data,Descrição,Valor\n01/01/2024,Venda,100\n"), 0o644))

	_, err := runFluxo(t, "--config", filepath.Join(dir, "fluxo.yaml"),
		"--state", filepath.Join(dir, "missing.json"), "import", csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fluxo init")
}

func TestClassifyApplyAndPending(t *testing.T) {
	dir, cfgPath, statePath := initDir(t)

	csvPath := filepath.Join(dir, "extrato.csv")
	require.NoError(t, os.WriteFile(csvPath,
		[]byte("Data,Descrição,Valor\n10/02/2024,Consultoria,2500.00\n"), 0o644))
	_, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "import", csvPath)
	require.NoError(t, err)

	state, err := store.Load(statePath)
	require.NoError(t, err)
	require.Len(t, state.Transactions, 1)
	id := state.Transactions[0].ID

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "classify", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Consultoria")
	assert.Contains(t, out, "1 pending")

	_, err = runFluxo(t, "--config", cfgPath, "--state", statePath,
		"classify", "apply", id,
		"--level1", "1.0 RECEITAS OPERACIONAIS",
		"--level2", "1.1 Receita de Vendas/Serviços")
	require.NoError(t, err)

	state, err = store.Load(statePath)
	require.NoError(t, err)
	assert.True(t, state.Transactions[0].IsReconciled())
	assert.Equal(t, "1.1 Receita de Vendas/Serviços", state.Transactions[0].Classification.Level2)

	// An invalid path is rejected.
	_, err = runFluxo(t, "--config", cfgPath, "--state", statePath,
		"classify", "apply", id, "--level1", "9.9 INEXISTENTE")
	require.Error(t, err)
}

func TestChartListAndAdd(t *testing.T) {
	_, cfgPath, statePath := initDir(t)

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "chart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0 RECEITAS OPERACIONAIS")
	assert.Contains(t, out, "2.3 Despesas Administrativas")

	_, err = runFluxo(t, "--config", cfgPath, "--state", statePath,
		"chart", "add", "--level1", "5.0 PROVISÕES")
	require.NoError(t, err)

	out, err = runFluxo(t, "--config", cfgPath, "--state", statePath, "chart", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "5.0 PROVISÕES")
}

func TestProjectFromExampleData(t *testing.T) {
	_, cfgPath, statePath := initDir(t, "--example")

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath,
		"project", "--months", "3", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "MONTH")
	assert.Contains(t, out, "CONFIDENCE")
}

func TestAuditFindsUnclassified(t *testing.T) {
	_, cfgPath, statePath := initDir(t, "--example")

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "unclassified")
}

func TestExportTransactions(t *testing.T) {
	dir, cfgPath, statePath := initDir(t, "--example")

	outPath := filepath.Join(dir, "out.csv")
	_, err := runFluxo(t, "--config", cfgPath, "--state", statePath,
		"export", "transactions", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Data,Descrição")
	assert.Contains(t, string(data), "Prestação de serviços - Cliente A")
}

func TestChatContextOnly(t *testing.T) {
	_, cfgPath, statePath := initDir(t, "--example")

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath,
		"chat", "--context-only", "como estão as finanças?")
	require.NoError(t, err)
	assert.Contains(t, out, "RESUMO FINANCEIRO:")
	assert.Contains(t, out, "Total de Transações: 8")
}

func TestHistoryAfterImport(t *testing.T) {
	dir, cfgPath, statePath := initDir(t)

	csvPath := filepath.Join(dir, "extrato.csv")
	require.NoError(t, os.WriteFile(csvPath,
		[]byte("Data,Descrição,Valor\n10/02/2024,Venda,100.00\n"), 0o644))
	_, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "import", csvPath)
	require.NoError(t, err)

	out, err := runFluxo(t, "--config", cfgPath, "--state", statePath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "import")
	assert.Contains(t, out, "extrato.csv")
}
