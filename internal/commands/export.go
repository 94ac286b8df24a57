package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/export"
	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/report"
)

func newExportCommand(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports and transactions as CSV",
	}
	exportCmd.AddCommand(newExportWriterCommand(a, "transactions", "Export the normalized transaction table",
		func(state *model.AppState, w io.Writer) error {
			return export.Transactions(w, state.Transactions)
		}))
	exportCmd.AddCommand(newExportWriterCommand(a, "dre", "Export the income statement",
		func(state *model.AppState, w io.Writer) error {
			return export.DRE(w, report.ComputeDRE(state.Transactions))
		}))
	exportCmd.AddCommand(newExportWriterCommand(a, "cashflow", "Export the monthly cash flow",
		func(state *model.AppState, w io.Writer) error {
			return export.CashFlow(w, report.GroupByMonth(state.Transactions))
		}))
	return exportCmd
}

func newExportWriterCommand(a *app, use, short string, write func(*model.AppState, io.Writer) error) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			if err := write(state, w); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	return cmd
}
