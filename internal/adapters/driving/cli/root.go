// Package cli implements the command-line interface for ruminate.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/cache/memory"
	configfile "github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/config/file"
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/llm/anthropic"
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/llm/ollama"
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/llm/openai"
	"github.com/lodestone-labs/ruminate-cli/internal/adapters/driven/ripgrep"
	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
	"github.com/lodestone-labs/ruminate-cli/internal/core/services"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Flag values bound in init.
var (
	flagVerbose   bool
	flagConfigDir string
	flagWorkspace string
)

// Services shared by all commands, wired in initServices.
var (
	settings      domain.Settings
	askService    *services.AskService
	knowledgeSvc  *services.KnowledgeService
	responseCache driven.ResponseCache
	llmService    driven.LLMService
)

var rootCmd = &cobra.Command{
	Use:   "ruminate",
	Short: "Distilled answers from your project documentation",
	Long: `Ruminate answers questions from a project's local documentation.

It searches the rules file (CLAUDE.md) and docs folder (.claude/) with
ripgrep, ranks and deduplicates the matching sections, and distills them
into a focused answer with an LLM. Without an ANTHROPIC_API_KEY the raw
search results are returned instead.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if llmService != nil {
			_ = llmService.Close() //nolint:errcheck // Best-effort shutdown
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.ruminate)")
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "workspace root (default current directory)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// initServices loads settings and wires the service graph. Runs before
// every command; commands that do not need services (version) still get
// a cheap no-network setup because the LLM client is lazy.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	store, err := configfile.NewSettingsStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("config store: %w", err)
	}

	settings, err = store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if flagWorkspace != "" {
		settings.Workspace = flagWorkspace
	}
	if settings.Workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve workspace: %w", err)
		}
		settings.Workspace = cwd
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger.Debug("workspace: %s (config: %s)", settings.Workspace, store.Path())

	searcher := ripgrep.New(ripgrep.Config{
		IncludeGlobs: settings.IncludeGlobs,
		ExcludeGlobs: settings.ExcludeGlobs,
		MaxResults:   settings.MaxResults,
	})

	llmService, err = newLLMService(settings)
	if err != nil {
		return err
	}
	if llmService != nil {
		logger.Info("distillation model: %s (%s)", llmService.ModelName(), settings.Provider)
	}

	responseCache = memory.NewResponseCache(settings.CacheTTL)
	knowledgeSvc = services.NewKnowledgeService(settings)
	askService = services.NewAskService(settings, searcher, llmService, responseCache)

	return nil
}

// newLLMService builds the configured provider's client. The LLM is
// optional: without a key the pipeline degrades to raw search results
// instead of failing.
func newLLMService(settings domain.Settings) (driven.LLMService, error) {
	switch settings.Provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Info("OPENAI_API_KEY not set, distillation disabled")
			return nil, nil
		}
		svc, err := openai.NewLLMService(openai.Config{
			APIKey: apiKey,
			Model:  settings.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		return svc, nil
	case "ollama":
		return ollama.NewLLMService(ollama.Config{
			Model: settings.Model,
		}), nil
	default:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Info("ANTHROPIC_API_KEY not set, distillation disabled")
			return nil, nil
		}
		svc, err := anthropic.NewLLMService(anthropic.Config{
			APIKey: apiKey,
			Model:  settings.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic client: %w", err)
		}
		return svc, nil
	}
}
