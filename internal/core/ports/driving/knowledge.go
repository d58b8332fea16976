package driving

import (
	"context"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// KnowledgeService reports the structure of the knowledge base.
type KnowledgeService interface {
	// List returns the knowledge-base files and sizes, primary root first.
	// Returns domain.ErrNoKnowledgeBase when neither root exists.
	List(ctx context.Context) (domain.Listing, error)
}
