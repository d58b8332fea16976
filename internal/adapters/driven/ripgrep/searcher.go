// Package ripgrep provides a TextSearcher adapter that shells out to
// ripgrep, falling back to grep when ripgrep is not installed. Binary
// files never match because search is restricted to the configured
// documentation and source extensions.
package ripgrep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driven.TextSearcher = (*Searcher)(nil)

// DefaultTimeout bounds one search invocation.
const DefaultTimeout = 30 * time.Second

// matchLinePattern parses "file:line:content" output lines.
var matchLinePattern = regexp.MustCompile(`^(.+?):(\d+):(.*)$`)

// Config holds searcher configuration.
type Config struct {
	// IncludeGlobs restricts search to these file patterns.
	IncludeGlobs []string

	// ExcludeGlobs excludes matching paths.
	ExcludeGlobs []string

	// MaxResults caps total matches across all roots.
	MaxResults int

	// Timeout bounds each subprocess invocation (default 30s).
	Timeout time.Duration
}

// Searcher invokes ripgrep or grep over the knowledge-base roots.
type Searcher struct {
	cfg Config

	// runner executes a prepared command and returns stdout. Tests
	// replace it to avoid real process spawning.
	runner func(ctx context.Context, name string, args []string) ([]byte, int, error)
}

// New creates a searcher with the given configuration.
func New(cfg Config) *Searcher {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = domain.DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Searcher{cfg: cfg, runner: runCommand}
}

// Search runs one case-insensitive OR-pattern search per root, primary
// root first, until the result cap is reached. A normal "no matches"
// exit yields an empty slice; a tool that cannot run at all surfaces
// domain.ErrSearchUnavailable.
func (s *Searcher) Search(ctx context.Context, keywords []string, roots []domain.SearchRoot) ([]domain.RawMatch, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	pattern := orPattern(keywords)
	logger.Debug("Search pattern: %s", pattern)

	var matches []domain.RawMatch
	for _, root := range roots {
		remaining := s.cfg.MaxResults - len(matches)
		if remaining <= 0 {
			break
		}

		out, err := s.searchRoot(ctx, pattern, root.Path, remaining)
		if err != nil {
			return nil, err
		}
		matches = append(matches, parseOutput(out, root, keywords)...)
	}

	if len(matches) > s.cfg.MaxResults {
		matches = matches[:s.cfg.MaxResults]
	}
	logger.Debug("Search returned %d matches", len(matches))
	return matches, nil
}

// searchRoot invokes ripgrep for one root, retrying with grep when the
// ripgrep binary is missing.
func (s *Searcher) searchRoot(ctx context.Context, pattern, root string, maxCount int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out, code, err := s.runner(ctx, "rg", s.ripgrepArgs(pattern, root, maxCount))
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("%w: rg: %v", domain.ErrSearchUnavailable, err)
		}
		logger.Debug("ripgrep not found, falling back to grep")
		out, code, err = s.runner(ctx, "grep", s.grepArgs(pattern, root, maxCount))
		if err != nil {
			return nil, fmt.Errorf("%w: grep: %v", domain.ErrSearchUnavailable, err)
		}
	}

	switch code {
	case 0, 1:
		// 1 is the normal "no matches" exit for both tools.
		return out, nil
	default:
		return nil, fmt.Errorf("%w: search tool exited with status %d", domain.ErrSearchUnavailable, code)
	}
}

// ripgrepArgs builds the ripgrep invocation for one root.
func (s *Searcher) ripgrepArgs(pattern, root string, maxCount int) []string {
	args := []string{
		"--ignore-case",
		"--line-number",
		"--no-heading",
		"--with-filename",
		"--color=never",
	}
	for _, glob := range s.cfg.IncludeGlobs {
		args = append(args, "--glob", glob)
	}
	for _, glob := range s.cfg.ExcludeGlobs {
		args = append(args, "--glob", "!"+glob)
	}
	if maxCount > 0 {
		args = append(args, "--max-count", strconv.Itoa(maxCount))
	}
	return append(args, pattern, root)
}

// grepArgs builds the grep fallback invocation for one root.
func (s *Searcher) grepArgs(pattern, root string, maxCount int) []string {
	args := []string{"-r", "-i", "-n", "-H", "-E"}
	for _, glob := range s.cfg.IncludeGlobs {
		args = append(args, "--include="+glob)
	}
	for _, glob := range s.cfg.ExcludeGlobs {
		args = append(args, "--exclude-dir="+glob)
	}
	if maxCount > 0 {
		args = append(args, "-m", strconv.Itoa(maxCount))
	}
	return append(args, pattern, root)
}

// orPattern builds a single alternation regex from literal keywords.
func orPattern(keywords []string) string {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return strings.Join(escaped, "|")
}

// parseOutput converts file:line:content output into RawMatches tagged
// with their originating root.
func parseOutput(out []byte, root domain.SearchRoot, keywords []string) []domain.RawMatch {
	var matches []domain.RawMatch
	for _, line := range strings.Split(string(bytes.TrimSpace(out)), "\n") {
		if line == "" {
			continue
		}
		m := matchLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		text := strings.TrimSpace(m[3])
		matches = append(matches, domain.RawMatch{
			Root:    root.Priority,
			File:    m[1],
			Line:    lineNum,
			Text:    text,
			Keyword: firstKeyword(text, keywords),
		})
	}
	return matches
}

// firstKeyword returns the first keyword present in the matched line.
func firstKeyword(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

// runCommand executes the search tool and returns stdout and the exit
// status. A missing binary or context timeout is returned as an error;
// a nonzero exit with output is not.
func runCommand(ctx context.Context, name string, args []string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return nil, -1, err
	}
	return out, 0, nil
}

// isNotFound reports whether the error means the binary is missing.
func isNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}
