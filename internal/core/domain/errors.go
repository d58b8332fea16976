package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidQuery indicates an empty or whitespace-only query.
	// This is the only error rejected before the pipeline runs.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSearchUnavailable indicates the external search tool failed to
	// execute (missing binary, crash, timeout). Distinct from a search
	// that ran and found nothing.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrLLMUnavailable indicates the summarisation service is not
	// configured. Distillation degrades to raw chunk output.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNoKnowledgeBase indicates neither the rules file nor the docs
	// folder exists in the workspace.
	ErrNoKnowledgeBase = errors.New("no knowledge base found")

	// ErrCacheCorrupt indicates a malformed cache entry was read.
	// Treated as a miss; the entry is evicted.
	ErrCacheCorrupt = errors.New("cache entry corrupt")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
