package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// fakeFiles builds a chunker option serving in-memory file content.
func fakeFiles(files map[string]string) ChunkerOption {
	return WithReadFile(func(path string) (string, error) {
		content, ok := files[path]
		if !ok {
			return "", errors.New("no such file")
		}
		return content, nil
	})
}

const markdownDoc = `# Guide
Intro line.

## Setup
Install the tool.
Run the installer.

## Usage
Call ruminate ask.

### Flags
Use --verbose for logs.
`

func TestChunker_HeadingSection(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": markdownDoc}))

	// Match on "Install the tool." (line 5).
	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 5, Text: "Install the tool."},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Setup", chunks[0].Title)
	assert.Equal(t, 4, chunks[0].StartLine)
	assert.Equal(t, 7, chunks[0].EndLine)
	assert.Contains(t, chunks[0].Content, "## Setup")
	assert.Contains(t, chunks[0].Content, "Run the installer.")
	assert.NotContains(t, chunks[0].Content, "## Usage")
}

func TestChunker_SectionEndsAtEqualOrHigherHeading(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": markdownDoc}))

	// Match inside "Usage" section: the subsection "Flags" (deeper level)
	// stays inside the Usage chunk.
	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 9, Text: "Call ruminate ask."},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Usage", chunks[0].Title)
	assert.Contains(t, chunks[0].Content, "### Flags")
}

func TestChunker_PreambleBeforeFirstHeading(t *testing.T) {
	doc := "prologue text\nmore prologue\n# First\nbody\n"
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": doc}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 1, Text: "prologue text"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].StartLine)
	assert.Equal(t, 2, chunks[0].EndLine)
	assert.Empty(t, chunks[0].Title)
}

func TestChunker_FencedCodeBlock(t *testing.T) {
	doc := "# Examples\ntext\n```go\nfunc main() {}\n```\nafter\n"
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": doc}))

	// Match inside the fence expands to the whole fence, not the section.
	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 4, Text: "func main() {}"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 3, chunks[0].StartLine)
	assert.Equal(t, 5, chunks[0].EndLine)
	assert.Equal(t, "Examples", chunks[0].Title)
	assert.Contains(t, chunks[0].Content, "func main() {}")
}

func TestChunker_HeadingInsideFenceIgnored(t *testing.T) {
	doc := "```\n# not a heading\ncode\n```\nplain line here\n"
	c := NewChunker(2, fakeFiles(map[string]string{"doc.md": doc}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 5, Text: "plain line here"},
	})

	// No real headings: sliding window applies.
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Title)
}

func TestChunker_SlidingWindowForHeadinglessFiles(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		b.WriteString("line\n")
	}
	c := NewChunker(5, fakeFiles(map[string]string{"notes.txt": b.String()}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootSecondary, File: "notes.txt", Line: 20, Text: "line"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 15, chunks[0].StartLine)
	assert.Equal(t, 25, chunks[0].EndLine)
}

func TestChunker_WindowClampedAtFileBounds(t *testing.T) {
	doc := "one\ntwo\nthree\nfour\n"
	c := NewChunker(10, fakeFiles(map[string]string{"notes.txt": doc}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootSecondary, File: "notes.txt", Line: 1, Text: "one"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].StartLine)
}

func TestChunker_OverlappingWindowsMerge(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		b.WriteString("line\n")
	}
	c := NewChunker(5, fakeFiles(map[string]string{"notes.txt": b.String()}))

	// Windows around lines 10 and 14 overlap and must merge into one chunk.
	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootSecondary, File: "notes.txt", Line: 10, Text: "line"},
		{Root: domain.RootSecondary, File: "notes.txt", Line: 14, Text: "line"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, 5, chunks[0].StartLine)
	assert.Equal(t, 19, chunks[0].EndLine)
}

func TestChunker_SameSectionMatchesCollapse(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": markdownDoc}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 5, Text: "Install the tool."},
		{Root: domain.RootPrimary, File: "doc.md", Line: 6, Text: "Run the installer."},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Setup", chunks[0].Title)
}

func TestChunker_PrimaryRootFilesFirst(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{
		"a_docs.md": "# A\ntext a\n",
		"rules.md":  "# R\ntext r\n",
	}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootSecondary, File: "a_docs.md", Line: 2, Text: "text a"},
		{Root: domain.RootPrimary, File: "rules.md", Line: 2, Text: "text r"},
	})

	require.Len(t, chunks, 2)
	assert.Equal(t, "rules.md", chunks[0].File)
	assert.Equal(t, "a_docs.md", chunks[1].File)
}

func TestChunker_UnreadableFileSkipped(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{"ok.md": "# OK\nbody\n"}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "missing.md", Line: 1, Text: "x"},
		{Root: domain.RootPrimary, File: "ok.md", Line: 2, Text: "body"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "ok.md", chunks[0].File)
}

func TestChunker_NoMatches(t *testing.T) {
	c := NewChunker(10)

	assert.Nil(t, c.ChunkMatches(nil))
}

func TestChunker_OutOfRangeLineIgnored(t *testing.T) {
	c := NewChunker(10, fakeFiles(map[string]string{"doc.md": "only line\n"}))

	chunks := c.ChunkMatches([]domain.RawMatch{
		{Root: domain.RootPrimary, File: "doc.md", Line: 99, Text: "stale"},
	})

	assert.Empty(t, chunks)
}
