package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/projection"
	"github.com/fluxo-dev/fluxo/internal/report"
)

func newProjectCommand(a *app) *cobra.Command {
	var methodFlag string
	var months int
	var seed int64

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project future months from the monthly history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			state, err := a.loadState(a.resolveStatePath(cfg))
			if err != nil {
				return err
			}

			if methodFlag == "" {
				methodFlag = state.Settings.ProjectionMethod
			}
			method, err := projection.ParseMethod(methodFlag)
			if err != nil {
				return err
			}
			if months == 0 {
				months = state.Settings.ProjectionMonths
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			history := report.GroupByMonth(state.Transactions)
			p, err := projection.Project(history, months, method, projection.NewJitter(seed))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !p.Reliable {
				fmt.Fprintln(out, "Warning: fewer than three months of history, estimates are rough")
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MONTH\tREVENUE\tEXPENSES\tRESULT\tACCUMULATED\tCONFIDENCE")
			for _, m := range p.Months {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0f%%\n",
					m.Month, m.Revenue.StringFixed(2), m.Expenses.StringFixed(2),
					m.Result.StringFixed(2), m.Accumulated.StringFixed(2), m.Confidence*100)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, r := range projection.Risks(p.Months) {
				fmt.Fprintf(out, "Risk (%s): %s\n", r.Kind, r.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&methodFlag, "method", "", "projection method: average, trend or seasonal")
	cmd.Flags().IntVar(&months, "months", 0, "months to project (defaults to settings)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "jitter seed (0 = time-based)")
	return cmd
}
