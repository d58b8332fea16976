package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// SettingsStore is a file-based settings store using TOML.
// Settings are stored in a TOML file within the ruminate config directory.
// The Anthropic API key is deliberately not part of the file; it is read
// from the ANTHROPIC_API_KEY environment variable only.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store.
// If configDir is empty, defaults to ~/.ruminate/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".ruminate")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from the TOML file, applying defaults for any
// field the file does not set. A missing file yields pure defaults.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return domain.Settings{}, err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	// A file that sets a field to its zero value falls back to the
	// default rather than breaking the pipeline.
	applyDefaults(&settings)

	return settings, nil
}

// Save persists settings to disk with restricted permissions.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

func applyDefaults(settings *domain.Settings) {
	defaults := domain.DefaultSettings()

	if settings.RulesFile == "" {
		settings.RulesFile = defaults.RulesFile
	}
	if settings.DocsFolder == "" {
		settings.DocsFolder = defaults.DocsFolder
	}
	if len(settings.IncludeGlobs) == 0 {
		settings.IncludeGlobs = defaults.IncludeGlobs
	}
	if len(settings.ExcludeGlobs) == 0 {
		settings.ExcludeGlobs = defaults.ExcludeGlobs
	}
	if settings.MaxResults <= 0 {
		settings.MaxResults = defaults.MaxResults
	}
	if settings.WindowLines <= 0 {
		settings.WindowLines = defaults.WindowLines
	}
	if settings.TopChunks <= 0 {
		settings.TopChunks = defaults.TopChunks
	}
	if settings.DedupeThreshold <= 0 {
		settings.DedupeThreshold = defaults.DedupeThreshold
	}
	if settings.CacheTTL <= 0 {
		settings.CacheTTL = defaults.CacheTTL
	}
	if settings.Provider == "" {
		settings.Provider = defaults.Provider
	}
	if settings.SimpleBudget <= 0 {
		settings.SimpleBudget = defaults.SimpleBudget
	}
	if settings.CodeExampleBudget <= 0 {
		settings.CodeExampleBudget = defaults.CodeExampleBudget
	}
	if settings.ComplexBudget <= 0 {
		settings.ComplexBudget = defaults.ComplexBudget
	}
}
