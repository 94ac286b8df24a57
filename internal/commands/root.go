// Package commands wires the CLI surface: every subcommand loads the full
// state document, mutates or reads it, and saves the replacement snapshot.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/buildinfo"
	"github.com/fluxo-dev/fluxo/internal/config"
	"github.com/fluxo-dev/fluxo/internal/history"
	"github.com/fluxo-dev/fluxo/internal/logger"
	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/snapshot"
	"github.com/fluxo-dev/fluxo/internal/store"
)

// app carries the flag values and logger shared by all subcommands.
type app struct {
	configPath string
	statePath  string
	verbose    bool
	log        zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "fluxo",
		Short:   "Bank transaction normalization and financial reporting",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.New(a.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "fluxo.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&a.statePath, "state", "", "path to the state file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newClassifyCommand(a))
	rootCmd.AddCommand(newChartCommand(a))
	rootCmd.AddCommand(newReportCommand(a))
	rootCmd.AddCommand(newProjectCommand(a))
	rootCmd.AddCommand(newAuditCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newChatCommand(a))
	rootCmd.AddCommand(newHistoryCommand(a))

	return rootCmd
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(""), nil
		}
		return nil, err
	}
	return cfg, nil
}

// resolveStatePath applies the --state override on top of the config.
func (a *app) resolveStatePath(cfg *config.Config) string {
	if a.statePath != "" {
		return a.statePath
	}
	return cfg.Storage.StatePath
}

// loadState reads the state document or explains how to create one.
func (a *app) loadState(path string) (*model.AppState, error) {
	state, err := store.Load(path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("no state found at %s, run 'fluxo init' first", path)
		}
		return nil, err
	}
	return state, nil
}

// saveState persists the snapshot, appends the operations log and, when the
// data directory is a git repository, commits both.
func (a *app) saveState(path string, state *model.AppState, operation, details string, affected int) error {
	if err := store.Save(path, state); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	entry := history.Entry{
		Timestamp: time.Now().UTC(),
		Operation: operation,
		Details:   details,
		Affected:  affected,
	}
	if err := history.Append(dir, []history.Entry{entry}); err != nil {
		a.log.Warn().Err(err).Msg("failed to write history log")
	}

	if snapshot.IsRepo(dir) {
		message := operation
		if details != "" {
			message = operation + ": " + details
		}
		if _, err := snapshot.Commit(dir, message, filepath.Base(path), history.FileName); err != nil {
			a.log.Warn().Err(err).Msg("failed to commit snapshot")
		}
	}
	return nil
}
