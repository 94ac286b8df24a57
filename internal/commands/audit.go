package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/audit"
)

func newAuditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Run data-quality checks over the transaction collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}

			r := audit.Run(state.Transactions, time.Now())
			out := cmd.OutOrStdout()
			if len(r.Findings) == 0 {
				fmt.Fprintln(out, "No findings")
				return nil
			}

			kinds := []audit.Kind{
				audit.KindUnclassified,
				audit.KindDuplicate,
				audit.KindOutlier,
				audit.KindIncomplete,
				audit.KindInvalidDate,
				audit.KindFutureDate,
				audit.KindOldDate,
				audit.KindZeroAmount,
				audit.KindDoubleAmount,
			}
			for _, kind := range kinds {
				findings := r.ByKind(kind)
				if len(findings) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s (%d):\n", kind, len(findings))
				for _, f := range findings {
					fmt.Fprintf(out, "  %s: %s\n", f.TransactionID, f.Message)
				}
			}
			fmt.Fprintf(out, "%d findings\n", len(r.Findings))
			return nil
		},
	}
}
