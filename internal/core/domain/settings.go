package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultRulesFile is the primary rules document in the workspace root.
	DefaultRulesFile = "CLAUDE.md"

	// DefaultDocsFolder is the secondary documentation folder.
	DefaultDocsFolder = ".claude"

	// DefaultMaxResults caps raw matches per search invocation.
	DefaultMaxResults = 50

	// DefaultWindowLines is the sliding-window radius for files without
	// heading structure.
	DefaultWindowLines = 10

	// DefaultTopChunks is the number of ranked chunks kept for distillation.
	DefaultTopChunks = 10

	// DefaultDedupeThreshold is the trigram similarity above which two
	// chunks are considered duplicates.
	DefaultDedupeThreshold = 0.85

	// DefaultCacheTTL bounds how long distilled answers are reused.
	DefaultCacheTTL = time.Hour

	// DefaultProvider is the LLM backend used for distillation.
	DefaultProvider = "anthropic"

	// Token budgets per query class.
	DefaultSimpleBudget      = 1000
	DefaultCodeExampleBudget = 4000
	DefaultComplexBudget     = 6000
)

// Settings is the complete runtime configuration. Loaded once at startup
// from the config file and flags; immutable afterwards.
type Settings struct {
	// Workspace is the project root containing the knowledge base.
	Workspace string `toml:"workspace"`

	// RulesFile is the primary rules document name, relative to Workspace.
	RulesFile string `toml:"rules_file"`

	// DocsFolder is the secondary documentation folder name, relative to
	// Workspace.
	DocsFolder string `toml:"docs_folder"`

	// IncludeGlobs restricts search to these file patterns.
	IncludeGlobs []string `toml:"include_globs"`

	// ExcludeGlobs excludes matching paths from search.
	ExcludeGlobs []string `toml:"exclude_globs"`

	// MaxResults caps raw matches per search invocation.
	MaxResults int `toml:"max_results"`

	// WindowLines is the sliding-window radius for headingless files.
	WindowLines int `toml:"window_lines"`

	// TopChunks is how many ranked chunks feed the distiller.
	TopChunks int `toml:"top_chunks"`

	// DedupeThreshold is the duplicate similarity cutoff in (0, 1].
	DedupeThreshold float64 `toml:"dedupe_threshold"`

	// CacheTTL is the response cache entry lifetime.
	CacheTTL time.Duration `toml:"cache_ttl"`

	// Provider selects the LLM backend: anthropic, openai or ollama.
	Provider string `toml:"provider"`

	// Model is the summarisation model name. Empty means the provider's
	// default model.
	Model string `toml:"model"`

	// SimpleBudget is the token budget for simple queries.
	SimpleBudget int `toml:"simple_budget"`

	// CodeExampleBudget is the token budget for code example queries.
	CodeExampleBudget int `toml:"code_example_budget"`

	// ComplexBudget is the token budget for complex queries.
	ComplexBudget int `toml:"complex_budget"`
}

// DefaultSettings returns settings with all defaults applied.
// The workspace defaults to the current directory at load time.
func DefaultSettings() Settings {
	return Settings{
		RulesFile:  DefaultRulesFile,
		DocsFolder: DefaultDocsFolder,
		IncludeGlobs: []string{
			"*.md", "*.markdown", "*.txt",
			"*.go", "*.py", "*.c", "*.h",
			"*.ts", "*.tsx", "*.js", "*.jsx",
			"*.sql", "*.sh", "*.yaml", "*.yml", "*.toml",
		},
		ExcludeGlobs: []string{
			".git", "node_modules", "vendor", "__pycache__",
		},
		MaxResults:        DefaultMaxResults,
		WindowLines:       DefaultWindowLines,
		TopChunks:         DefaultTopChunks,
		DedupeThreshold:   DefaultDedupeThreshold,
		CacheTTL:          DefaultCacheTTL,
		Provider:          DefaultProvider,
		SimpleBudget:      DefaultSimpleBudget,
		CodeExampleBudget: DefaultCodeExampleBudget,
		ComplexBudget:     DefaultComplexBudget,
	}
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Workspace) == "" {
		return fmt.Errorf("%w: workspace is required", ErrInvalidInput)
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive", ErrInvalidInput)
	}
	if s.WindowLines <= 0 {
		return fmt.Errorf("%w: window_lines must be positive", ErrInvalidInput)
	}
	if s.TopChunks <= 0 {
		return fmt.Errorf("%w: top_chunks must be positive", ErrInvalidInput)
	}
	if s.DedupeThreshold <= 0 || s.DedupeThreshold > 1 {
		return fmt.Errorf("%w: dedupe_threshold must be in (0, 1]", ErrInvalidInput)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidInput)
	}
	switch s.Provider {
	case "anthropic", "openai", "ollama":
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, s.Provider)
	}
	return nil
}

// RulesFilePath returns the absolute path of the primary rules file.
func (s Settings) RulesFilePath() string {
	return filepath.Join(s.Workspace, s.RulesFile)
}

// DocsFolderPath returns the absolute path of the documentation folder.
func (s Settings) DocsFolderPath() string {
	return filepath.Join(s.Workspace, s.DocsFolder)
}

// BudgetFor returns the token budget bound to a query class.
func (s Settings) BudgetFor(class QueryClass) int {
	switch class {
	case ClassCodeExample:
		return s.CodeExampleBudget
	case ClassComplex:
		return s.ComplexBudget
	default:
		return s.SimpleBudget
	}
}
