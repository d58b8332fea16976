package driven

import (
	"context"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// TextSearcher invokes the external full-text search tool over the
// knowledge-base roots.
//
// Implementations wrap a line-oriented search subprocess (ripgrep, with a
// grep fallback). Tests inject a fake to avoid process spawning.
type TextSearcher interface {
	// Search runs a case-insensitive search for the keywords across the
	// roots in order. A search that runs and finds nothing returns an
	// empty slice and a nil error. A tool that cannot run (missing
	// binary, crash, timeout) returns domain.ErrSearchUnavailable.
	Search(ctx context.Context, keywords []string, roots []domain.SearchRoot) ([]domain.RawMatch, error)
}
