package services

import (
	"strings"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// Deduplicator removes near-identical chunks from a ranked list. Two
// chunks are duplicates when their normalised text similarity exceeds
// the threshold, or when one chunk's line range is a subset of the
// other's within the same file.
type Deduplicator struct {
	threshold float64
}

// NewDeduplicator creates a deduplicator with the given similarity
// threshold in (0, 1].
func NewDeduplicator(threshold float64) *Deduplicator {
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultDedupeThreshold
	}
	return &Deduplicator{threshold: threshold}
}

// Dedupe filters a ranked list, keeping the first (higher-scored) of any
// duplicate pair. Input order is assumed to be descending score, so a
// single stable pass preserves both the membership rule and the order.
func (d *Deduplicator) Dedupe(ranked []domain.ScoredChunk) []domain.ScoredChunk {
	if len(ranked) == 0 {
		return nil
	}

	kept := make([]domain.ScoredChunk, 0, len(ranked))
	normalised := make([]string, 0, len(ranked))

	for _, candidate := range ranked {
		norm := NormaliseText(candidate.Chunk.Content)
		dup := false
		for i := range kept {
			if isSubsetRange(kept[i].Chunk, candidate.Chunk) {
				dup = true
				break
			}
			if similarity(normalised[i], norm) >= d.threshold {
				dup = true
				break
			}
		}
		if dup {
			logger.Debug("Dropping duplicate chunk %s", candidate.Chunk)
			continue
		}
		kept = append(kept, candidate)
		normalised = append(normalised, norm)
	}
	return kept
}

// isSubsetRange reports whether either chunk's line range contains the
// other's, for chunks of the same file.
func isSubsetRange(a, b domain.Chunk) bool {
	if a.File != b.File {
		return false
	}
	if a.StartLine <= b.StartLine && b.EndLine <= a.EndLine {
		return true
	}
	return b.StartLine <= a.StartLine && a.EndLine <= b.EndLine
}

// similarity is the Jaccard overlap of word trigram sets over
// normalised text. Texts too short for trigrams compare by equality.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	sa := shingles(a)
	sb := shingles(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	inter := 0
	for s := range sa {
		if _, ok := sb[s]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// shingles returns the set of word trigrams of a normalised string.
func shingles(s string) map[string]struct{} {
	words := strings.Fields(s)
	if len(words) < 3 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for i := 0; i+3 <= len(words); i++ {
		set[words[i]+" "+words[i+1]+" "+words[i+2]] = struct{}{}
	}
	return set
}
