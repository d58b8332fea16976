package driving

import (
	"context"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// AskService answers natural-language queries from the knowledge base.
type AskService interface {
	// Ask runs the search-rank-distill pipeline for a query. queryContext
	// is an optional hint (current file or topic) appended to the search.
	// External failures degrade to a labelled answer; only an empty query
	// returns an error.
	Ask(ctx context.Context, query, queryContext string) (domain.Answer, error)
}
