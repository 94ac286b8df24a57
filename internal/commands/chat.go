package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluxo-dev/fluxo/internal/ai"
)

func newChatCommand(a *app) *cobra.Command {
	var contextOnly bool

	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask the assistant about the financial data",
		Long: "Builds a compact summary of the current data and sends it with the " +
			"question to the configured model. The answer is display text only; " +
			"the assistant never changes the data.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			state, err := a.loadState(a.resolveStatePath(cfg))
			if err != nil {
				return err
			}

			financialContext := ai.BuildFinancialContext(state)
			if contextOnly {
				fmt.Fprint(cmd.OutOrStdout(), financialContext)
				return nil
			}

			model := cfg.AI.Model
			if state.Settings.AIModel != "" {
				model = state.Settings.AIModel
			}
			gen, err := ai.NewGeminiGenerator(cmd.Context(), model)
			if err != nil {
				return err
			}
			client := ai.NewClient(gen, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

			answer, err := client.Ask(cmd.Context(), financialContext, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().BoolVar(&contextOnly, "context-only", false, "print the prepared context without calling the model")
	return cmd
}
