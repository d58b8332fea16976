package domain

import "fmt"

// Chunk is a contiguous fragment of a knowledge-base file treated as one
// retrieval unit. Chunks from the same file never overlap in line range.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Root is the knowledge-base root the chunk came from.
	Root RootPriority

	// File is the absolute path of the source file.
	File string

	// Title is the enclosing section heading, if any.
	Title string

	// StartLine is the 1-indexed first line of the chunk (inclusive).
	StartLine int

	// EndLine is the 1-indexed last line of the chunk (inclusive).
	EndLine int

	// Content is the chunk text.
	Content string
}

// LineCount returns the number of lines covered by the chunk.
func (c Chunk) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// Contains reports whether the given line falls inside the chunk range.
func (c Chunk) Contains(line int) bool {
	return line >= c.StartLine && line <= c.EndLine
}

// String returns the chunk location in file:start-end form.
func (c Chunk) String() string {
	if c.Title != "" {
		return fmt.Sprintf("%s:%d-%d (%s)", c.File, c.StartLine, c.EndLine, c.Title)
	}
	return fmt.Sprintf("%s:%d-%d", c.File, c.StartLine, c.EndLine)
}

// ScoredChunk is a chunk with its relevance score. The score is
// deterministic for a given chunk and keyword set.
type ScoredChunk struct {
	// Chunk is the scored fragment.
	Chunk Chunk

	// Score is the relevance score, higher is more relevant.
	Score float64

	// Matched lists the query keywords found in the chunk.
	Matched []string
}

// String returns the scored chunk with its score.
func (s ScoredChunk) String() string {
	return fmt.Sprintf("%s (score: %.3f)", s.Chunk, s.Score)
}
