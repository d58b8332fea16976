// Package domain defines the core business entities for Ruminate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawMatch: A single line hit from the full-text search tool
//   - Chunk: A bounded fragment of a knowledge-base file
//   - ScoredChunk: A chunk with its relevance score
//   - QueryClass: The response size classification of a query
//   - Answer: A distilled response with usage statistics
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
