package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the knowledge base contents",
	Long: `Shows which documentation files would be searched: the rules file in
the workspace root and the top level of the docs folder.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output the listing as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if knowledgeSvc == nil {
		return errors.New("knowledge service not configured")
	}

	listing, err := knowledgeSvc.List(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoKnowledgeBase) {
			cmd.Println(noticeStyle.Render(fmt.Sprintf(
				"No knowledge base found in %s. Expected %s and/or %s/.",
				settings.Workspace, settings.RulesFile, settings.DocsFolder)))
			return nil
		}
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal listing: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(titleStyle.Render("Knowledge base: " + listing.Workspace))
	cmd.Println()
	for _, entry := range listing.Entries {
		switch {
		case entry.Dir:
			cmd.Printf("  %s (%d files)\n", valueStyle.Render(entry.Path+"/"), entry.FileCount)
		default:
			cmd.Printf("  %s %s\n", valueStyle.Render(entry.Path), labelStyle.Render(formatSize(entry.SizeBytes)))
		}
	}
	return nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("(%.1f MB)", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("(%.1f KB)", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("(%d B)", n)
	}
}
