package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/chart"
	"github.com/fluxo-dev/fluxo/internal/config"
	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/snapshot"
	"github.com/fluxo-dev/fluxo/internal/store"
)

func newInitCommand(a *app) *cobra.Command {
	var name string
	var withExample bool
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Fluxo data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, name, withExample, withGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&withExample, "example", false, "seed the state with example transactions")
	cmd.Flags().BoolVar(&withGit, "git", false, "version the data directory with git")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, withExample, withGit bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, "fluxo.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	state := &model.AppState{
		Chart:    chart.Default(),
		Settings: model.DefaultSettings(),
	}
	if withExample {
		state.Transactions = exampleTransactions(time.Now())
	}

	statePath := filepath.Join(dir, cfg.Storage.StatePath)
	if err := store.Save(statePath, state); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	if withGit {
		if err := snapshot.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		if _, err := snapshot.Commit(dir, "init: "+name, "fluxo.yaml", cfg.Storage.StatePath); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized Fluxo data directory at %s (%d transactions)\n",
		dir, len(state.Transactions))
	return nil
}

// exampleTransactions seeds a new state with three months of plausible data
// so reports and projections have something to show.
func exampleTransactions(now time.Time) []*model.Transaction {
	type seed struct {
		monthsAgo   int
		day         int
		description string
		in, out     string
		level1      string
		level2      string
	}
	seeds := []seed{
		{2, 5, "Prestação de serviços - Cliente A", "8500.00", "", "1.0 RECEITAS OPERACIONAIS", "1.1 Receita de Vendas/Serviços"},
		{2, 10, "Aluguel do escritório", "", "2200.00", "2.0 CUSTOS E DESPESAS OPERACIONAIS", "2.3 Despesas Administrativas"},
		{2, 15, "Salários", "", "4100.00", "2.0 CUSTOS E DESPESAS OPERACIONAIS", "2.2 Despesas com Pessoal"},
		{1, 5, "Prestação de serviços - Cliente B", "9200.00", "", "1.0 RECEITAS OPERACIONAIS", "1.1 Receita de Vendas/Serviços"},
		{1, 10, "Aluguel do escritório", "", "2200.00", "2.0 CUSTOS E DESPESAS OPERACIONAIS", "2.3 Despesas Administrativas"},
		{1, 18, "Marketing digital", "", "650.00", "2.0 CUSTOS E DESPESAS OPERACIONAIS", "2.4 Despesas Comerciais"},
		{0, 3, "Prestação de serviços - Cliente A", "7800.00", "", "1.0 RECEITAS OPERACIONAIS", "1.1 Receita de Vendas/Serviços"},
		{0, 8, "Internet e telefone", "", "320.00", "", ""},
	}

	var out []*model.Transaction
	for _, s := range seeds {
		t := &model.Transaction{
			ID:          uuid.NewString(),
			Description: s.description,
			Bank:        "Exemplo",
			Status:      model.StatusPending,
		}
		if s.in != "" {
			t.AmountIn = decimal.RequireFromString(s.in)
		}
		if s.out != "" {
			t.AmountOut = decimal.RequireFromString(s.out)
		}
		if s.level1 != "" {
			t.Classification = model.Classification{Level1: s.level1, Level2: s.level2}
			t.Status = model.StatusReconciled
		}
		base := now.AddDate(0, -s.monthsAgo, 0)
		t.SetDate(time.Date(base.Year(), base.Month(), s.day, 0, 0, 0, 0, time.UTC))
		out = append(out, t)
	}
	return out
}
