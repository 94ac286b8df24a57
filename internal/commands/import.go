package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import bank transactions from a CSV statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0])
		},
	}
	return cmd
}

func runImport(cmd *cobra.Command, a *app, file string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	statePath := a.resolveStatePath(cfg)
	state, err := a.loadState(statePath)
	if err != nil {
		return err
	}

	result, err := importer.File(file, time.Now())
	if err != nil {
		return fmt.Errorf("importing %s: %w", file, err)
	}

	state.Transactions = append(state.Transactions, result.Transactions...)
	if err := a.saveState(statePath, state, "import", filepath.Base(file), len(result.Transactions)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d transactions from %s", len(result.Transactions), filepath.Base(file))
	if result.Skipped > 0 {
		fmt.Fprintf(out, " (%d rows skipped)", result.Skipped)
	}
	fmt.Fprintln(out)

	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  line %d: %s\n", w.Line, w.Message)
	}
	return nil
}
