package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/classify"
	"github.com/fluxo-dev/fluxo/internal/model"
)

func newClassifyCommand(a *app) *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify and reconcile transactions",
	}
	classifyCmd.AddCommand(newClassifyPendingCommand(a))
	classifyCmd.AddCommand(newClassifySuggestCommand(a))
	classifyCmd.AddCommand(newClassifyApplyCommand(a))
	classifyCmd.AddCommand(newClassifyDupLastCommand(a))
	return classifyCmd
}

func newClassifyPendingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List transactions awaiting reconciliation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tIN\tOUT")
			count := 0
			for _, t := range state.Transactions {
				if t.IsReconciled() {
					continue
				}
				count++
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Description,
					t.AmountIn.StringFixed(2), t.AmountOut.StringFixed(2))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending\n", count)
			return nil
		},
	}
}

func newClassifySuggestCommand(a *app) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "suggest <transaction-id>",
		Short: "Suggest a classification from keyword rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			statePath := a.resolveStatePath(cfg)
			state, err := a.loadState(statePath)
			if err != nil {
				return err
			}
			t, ok := state.Find(args[0])
			if !ok {
				return fmt.Errorf("transaction %s not found", args[0])
			}

			suggestion, ok := classify.Suggest(t, classify.DefaultRules())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestion matched")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Suggestion: %s / %s / %s\n",
				suggestion.Level1, suggestion.Level2, suggestion.Level3)

			if !apply {
				return nil
			}
			if err := classify.Reconcile(t, &state.Chart, suggestion, t.CostCenter, "", ""); err != nil {
				return err
			}
			if err := a.saveState(statePath, state, "classify", t.ID+" suggested", 1); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Applied and reconciled")
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "reconcile with the suggested classification")
	return cmd
}

func newClassifyApplyCommand(a *app) *cobra.Command {
	var level1, level2, level3 string
	var costCenter, reference, notes string

	cmd := &cobra.Command{
		Use:   "apply <transaction-id>",
		Short: "Reconcile a transaction with an explicit classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			statePath := a.resolveStatePath(cfg)
			state, err := a.loadState(statePath)
			if err != nil {
				return err
			}
			t, ok := state.Find(args[0])
			if !ok {
				return fmt.Errorf("transaction %s not found", args[0])
			}

			c := model.Classification{Level1: level1, Level2: level2, Level3: level3}
			if err := classify.Reconcile(t, &state.Chart, c, costCenter, reference, notes); err != nil {
				return err
			}
			if err := a.saveState(statePath, state, "classify", t.ID+" reconciled", 1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %s as %s / %s / %s\n",
				t.ID, c.Level1, c.Level2, c.Level3)
			return nil
		},
	}

	cmd.Flags().StringVar(&level1, "level1", "", "level-1 group (required)")
	_ = cmd.MarkFlagRequired("level1")
	cmd.Flags().StringVar(&level2, "level2", "", "level-2 category")
	cmd.Flags().StringVar(&level3, "level3", "", "level-3 item")
	cmd.Flags().StringVar(&costCenter, "cost-center", "", "cost center")
	cmd.Flags().StringVar(&reference, "reference", "", "document reference")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newClassifyDupLastCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dup-last <transaction-id>",
		Short: "Copy the classification of the most recently reconciled transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			statePath := a.resolveStatePath(cfg)
			state, err := a.loadState(statePath)
			if err != nil {
				return err
			}
			t, ok := state.Find(args[0])
			if !ok {
				return fmt.Errorf("transaction %s not found", args[0])
			}

			if !classify.DuplicateLastClassification(t, state.Transactions) {
				return fmt.Errorf("no reconciled transaction to copy from")
			}
			if err := a.saveState(statePath, state, "classify", t.ID+" copied last", 1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s / %s / %s onto %s\n",
				t.Classification.Level1, t.Classification.Level2, t.Classification.Level3, t.ID)
			return nil
		},
	}
}

// loadForRead is the shared read-only open path for reporting commands.
func loadForRead(a *app) (*model.AppState, string, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, "", err
	}
	statePath := a.resolveStatePath(cfg)
	state, err := a.loadState(statePath)
	if err != nil {
		return nil, "", err
	}
	return state, statePath, nil
}
