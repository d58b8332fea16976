package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session token usage",
	Long:  `Shows accumulated token usage for the current process.`,
	RunE:  runStats,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the session counters",
	RunE:  runStatsReset,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	statsCmd.AddCommand(statsResetCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	stats := askService.SessionStats()

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(titleStyle.Render("Session Stats"))
	cmd.Printf("  %s %d\n", labelStyle.Render("Queries:"), stats.QueryCount)
	cmd.Printf("  %s %d\n", labelStyle.Render("Cached:"), stats.CachedCount)
	cmd.Printf("  %s %d\n", labelStyle.Render("Input tokens:"), stats.TotalInputTokens)
	cmd.Printf("  %s %d\n", labelStyle.Render("Output tokens:"), stats.TotalOutputTokens)
	return nil
}

func runStatsReset(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	askService.ResetSessionStats()
	cmd.Println(successStyle.Render("Session stats reset."))
	return nil
}
