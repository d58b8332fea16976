package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

var (
	askContext string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the project documentation",
	Long: `Searches the knowledge base and distills the matching sections into
a focused answer.

Examples:
  ruminate ask "how do I run the tests?"
  ruminate ask "show me an example of the retry logic" --context "internal/client"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askContext, "context", "c", "", "additional context appended to the search")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	answer, err := askService.Ask(cmd.Context(), args[0], askContext)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			return errors.New("question must not be empty")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Println(labelStyle.Render(formatStats(answer.Stats)))
	return nil
}

func formatStats(stats domain.AnswerStats) string {
	s := fmt.Sprintf("[%s | budget %d | in %d out %d tokens",
		stats.QueryClass, stats.Budget, stats.InputTokens, stats.OutputTokens)
	if stats.Cached {
		s += " | cached"
	}
	if stats.Degraded {
		s += " | degraded"
	}
	return s + "]"
}
