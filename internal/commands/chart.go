package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/chart"
	"github.com/fluxo-dev/fluxo/internal/model"
)

func newChartCommand(a *app) *cobra.Command {
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Manage the chart of accounts",
	}
	chartCmd.AddCommand(newChartListCommand(a))
	chartCmd.AddCommand(newChartAddCommand(a))
	chartCmd.AddCommand(newChartRenameCommand(a))
	chartCmd.AddCommand(newChartDeleteCommand(a))
	return chartCmd
}

func newChartListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the chart of accounts tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := loadForRead(a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			svc := chart.NewService(&state.Chart)
			for _, l1 := range svc.Level1() {
				fmt.Fprintln(out, l1)
				for _, l2 := range svc.Level2(l1) {
					fmt.Fprintf(out, "  %s\n", l2)
					for _, l3 := range svc.Level3(l1, l2) {
						fmt.Fprintf(out, "    %s\n", l3)
					}
				}
			}
			return nil
		},
	}
}

func chartPathFlags(cmd *cobra.Command, level1, level2, level3 *string) {
	cmd.Flags().StringVar(level1, "level1", "", "level-1 group (required)")
	_ = cmd.MarkFlagRequired("level1")
	cmd.Flags().StringVar(level2, "level2", "", "level-2 category")
	cmd.Flags().StringVar(level3, "level3", "", "level-3 item")
}

func newChartAddCommand(a *app) *cobra.Command {
	var level1, level2, level3 string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a node to the chart",
		Args:  cobra.NoArgs,
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

			path := model.Classification{Level1: level1, Level2: level2, Level3: level3}
			if err := chart.NewService(&state.Chart).Add(path); err != nil {
				return err
			}
			if err := a.saveState(statePath, state, "chart", "add "+pathString(path), 0); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", pathString(path))
			return nil
		},
	}
	chartPathFlags(cmd, &level1, &level2, &level3)
	return cmd
}

func newChartRenameCommand(a *app) *cobra.Command {
	var level1, level2, level3, newName string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a chart node",
		Args:  cobra.NoArgs,
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

			path := model.Classification{Level1: level1, Level2: level2, Level3: level3}
			if err := chart.NewService(&state.Chart).Rename(path, newName); err != nil {
				return err
			}
			if err := a.saveState(statePath, state, "chart", "rename "+pathString(path), 0); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", pathString(path), newName)
			return nil
		},
	}
	chartPathFlags(cmd, &level1, &level2, &level3)
	cmd.Flags().StringVar(&newName, "to", "", "new name (required)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newChartDeleteCommand(a *app) *cobra.Command {
	var level1, level2, level3 string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a chart node and everything under it",
		Args:  cobra.NoArgs,
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

			path := model.Classification{Level1: level1, Level2: level2, Level3: level3}
			if err := chart.NewService(&state.Chart).Delete(path); err != nil {
				return err
			}
			if err := a.saveState(statePath, state, "chart", "delete "+pathString(path), 0); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", pathString(path))
			return nil
		},
	}
	chartPathFlags(cmd, &level1, &level2, &level3)
	return cmd
}

func pathString(c model.Classification) string {
	s := c.Level1
	if c.Level2 != "" {
		s += " / " + c.Level2
	}
	if c.Level3 != "" {
		s += " / " + c.Level3
	}
	return s
}
