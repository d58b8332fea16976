package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

func scoredChunk(file string, start, end int, content string, score float64) domain.ScoredChunk {
	return domain.ScoredChunk{
		Chunk: domain.Chunk{
			ID:        file,
			File:      file,
			StartLine: start,
			EndLine:   end,
			Content:   content,
		},
		Score: score,
	}
}

func TestDedupe_KeepsHigherScoredOfIdenticalPair(t *testing.T) {
	d := NewDeduplicator(0.85)

	ranked := []domain.ScoredChunk{
		scoredChunk("a.md", 1, 5, "the cache invalidates entries after one hour of idle time", 2.0),
		scoredChunk("b.md", 1, 5, "the cache invalidates entries after one hour of idle time", 1.0),
	}

	kept := d.Dedupe(ranked)

	require.Len(t, kept, 1)
	assert.Equal(t, "a.md", kept[0].Chunk.File)
}

func TestDedupe_NormalisedComparison(t *testing.T) {
	d := NewDeduplicator(0.85)

	ranked := []domain.ScoredChunk{
		scoredChunk("a.md", 1, 5, "The Cache   invalidates entries after one hour", 2.0),
		scoredChunk("b.md", 1, 5, "the cache invalidates entries\nafter one hour", 1.0),
	}

	kept := d.Dedupe(ranked)

	assert.Len(t, kept, 1)
}

func TestDedupe_SubsetRangeSameFile(t *testing.T) {
	d := NewDeduplicator(0.85)

	// The smaller chunk's range is inside the bigger one's: drop it even
	// though the texts differ.
	ranked := []domain.ScoredChunk{
		scoredChunk("a.md", 1, 50, "full section content with many details here", 2.0),
		scoredChunk("a.md", 10, 20, "completely different words entirely unrelated text", 1.0),
	}

	kept := d.Dedupe(ranked)

	require.Len(t, kept, 1)
	assert.Equal(t, 1, kept[0].Chunk.StartLine)
}

func TestDedupe_SameRangeDifferentFilesKept(t *testing.T) {
	d := NewDeduplicator(0.85)

	ranked := []domain.ScoredChunk{
		scoredChunk("a.md", 1, 10, "first file talks about logging configuration options", 2.0),
		scoredChunk("b.md", 1, 10, "second file covers storage engine tuning parameters", 1.0),
	}

	kept := d.Dedupe(ranked)

	assert.Len(t, kept, 2)
}

func TestDedupe_DissimilarTextKept(t *testing.T) {
	d := NewDeduplicator(0.85)

	ranked := []domain.ScoredChunk{
		scoredChunk("a.md", 1, 5, "how to configure the logger verbosity levels", 2.0),
		scoredChunk("b.md", 1, 5, "database migrations run automatically at startup", 1.0),
	}

	kept := d.Dedupe(ranked)

	assert.Len(t, kept, 2)
}

func TestDedupe_PreservesOrder(t *testing.T) {
	d := NewDeduplicator(0.85)

	ranked := []domain.ScoredChunk{
		scoredChunk("c.md", 1, 5, "topic one entirely about searching and indexing", 3.0),
		scoredChunk("a.md", 1, 5, "topic two entirely about caching and eviction", 2.0),
		scoredChunk("b.md", 1, 5, "topic three entirely about ranking and scoring", 1.0),
	}

	kept := d.Dedupe(ranked)

	require.Len(t, kept, 3)
	assert.Equal(t, "c.md", kept[0].Chunk.File)
	assert.Equal(t, "a.md", kept[1].Chunk.File)
	assert.Equal(t, "b.md", kept[2].Chunk.File)
}

func TestDedupe_Empty(t *testing.T) {
	d := NewDeduplicator(0.85)

	assert.Nil(t, d.Dedupe(nil))
}

func TestNewDeduplicator_InvalidThresholdUsesDefault(t *testing.T) {
	d := NewDeduplicator(0)

	assert.Equal(t, domain.DefaultDedupeThreshold, d.threshold)
}

func TestSimilarity_ShortTextsCompareByEquality(t *testing.T) {
	assert.Equal(t, 1.0, similarity("two words", "two words"))
	assert.Equal(t, 0.0, similarity("two words", "other words"))
}
