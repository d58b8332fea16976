package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Response cache commands",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached answers",
	Long: `Removes all cached answers. The next ask for any question will search
and distill again. Note the cache also self-invalidates when the
knowledge base files change.`,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	n := askService.ClearCache()
	cmd.Println(successStyle.Render(fmt.Sprintf("Cleared %d cached answers.", n)))
	return nil
}
