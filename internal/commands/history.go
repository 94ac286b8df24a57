package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/history"
)

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the log of state mutations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			dir := filepath.Dir(a.resolveStatePath(cfg))

			entries, err := history.Read(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tOPERATION\tDETAILS\tAFFECTED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
					e.Timestamp.Format(time.RFC3339), e.Operation, e.Details, e.Affected)
			}
			return tw.Flush()
		},
	}
}
