package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports over the normalized data",
	}
	reportCmd.AddCommand(newReportKPICommand(a))
	reportCmd.AddCommand(newReportMonthlyCommand(a))
	reportCmd.AddCommand(newReportCategoryCommand(a))
	reportCmd.AddCommand(newReportDRECommand(a))
	return reportCmd
}

func newReportKPICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Headline totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}
			kpis := report.ComputeKPIs(state.Transactions)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transactions:   %d\n", kpis.Count)
			fmt.Fprintf(out, "Total revenue:  %s\n", kpis.TotalRevenue.StringFixed(2))
			fmt.Fprintf(out, "Total expenses: %s\n", kpis.TotalExpenses.StringFixed(2))
			fmt.Fprintf(out, "Net result:     %s\n", kpis.NetResult.StringFixed(2))
			return nil
		},
	}
}

func newReportMonthlyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Revenue and expenses by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MONTH\tREVENUE\tEXPENSES\tRESULT")
			for _, b := range report.GroupByMonth(state.Transactions) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					b.Month, b.Revenue.StringFixed(2), b.Expenses.StringFixed(2), b.Result().StringFixed(2))
			}
			return tw.Flush()
		},
	}
}

func newReportCategoryCommand(a *app) *cobra.Command {
	var level int
	var top int

	cmd := &cobra.Command{
		Use:   "category",
		Short: "Expense totals by classification level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level < 1 || level > 3 {
				return fmt.Errorf("level must be 1, 2 or 3")
			}
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}

			totals := report.GroupByCategory(state.Transactions, level)
			rows := report.TopCategories(totals, top)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tEXPENSES")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Total.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&level, "level", 1, "classification level (1-3)")
	cmd.Flags().IntVar(&top, "top", 0, "limit to the n largest categories (0 = all)")
	return cmd
}

func newReportDRECommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dre",
		Short: "Income statement over reconciled transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}
			d := report.ComputeDRE(state.Transactions)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Receita Operacional\t%s\n", d.Revenue.StringFixed(2))
			for _, name := range sortedKeys(d.RevenueByCategory) {
				fmt.Fprintf(tw, "  %s\t%s\n", name, d.RevenueByCategory[name].StringFixed(2))
			}
			fmt.Fprintf(tw, "Custos e Despesas\t%s\n", d.Expenses.StringFixed(2))
			for _, name := range sortedKeys(d.ExpensesByCategory) {
				fmt.Fprintf(tw, "  %s\t%s\n", name, d.ExpensesByCategory[name].StringFixed(2))
			}
			fmt.Fprintf(tw, "Resultado Operacional\t%s\n", d.OperatingResult().StringFixed(2))
			fmt.Fprintf(tw, "Resultado Financeiro\t%s\n", d.FinancialResult.StringFixed(2))
			fmt.Fprintf(tw, "Resultado Líquido\t%s\n", d.NetResult().StringFixed(2))
			fmt.Fprintf(tw, "Margem Líquida\t%s%%\n", d.NetMargin.Mul(decimal.NewFromInt(100)).StringFixed(1))
			return tw.Flush()
		},
	}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
