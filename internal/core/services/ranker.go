package services

import (
	"math"
	"sort"
	"strings"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// Scoring weights. The score is a lightweight TF-style measure: raw
// occurrence counts dampened by log, normalised by chunk length so
// volume alone does not win, with boosts for heading hits and for the
// primary rules file.
const (
	headingBoost    = 2.0
	primaryBoost    = 1.5
	diversityWeight = 1.0
)

// Ranker scores chunks against extracted keywords and orders them
// deterministically. Purely a function of its inputs.
type Ranker struct {
	topN int
}

// NewRanker creates a ranker that keeps the topN highest-scored chunks.
func NewRanker(topN int) *Ranker {
	if topN <= 0 {
		topN = domain.DefaultTopChunks
	}
	return &Ranker{topN: topN}
}

// Rank scores every chunk and returns the top N in descending score
// order. Chunks with no keyword occurrences are dropped. Ties are broken
// by root priority, then file path, then start line, so identical input
// always yields identical output.
func (r *Ranker) Rank(chunks []domain.Chunk, keywords []string) []domain.ScoredChunk {
	if len(chunks) == 0 || len(keywords) == 0 {
		return nil
	}

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		score, matched := scoreChunk(chunk, keywords)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk:   chunk,
			Score:   score,
			Matched: matched,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ci, cj := scored[i].Chunk, scored[j].Chunk
		if ci.Root != cj.Root {
			return ci.Root < cj.Root
		}
		if ci.File != cj.File {
			return ci.File < cj.File
		}
		return ci.StartLine < cj.StartLine
	})

	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}
	return scored
}

// scoreChunk computes the relevance score for one chunk.
func scoreChunk(chunk domain.Chunk, keywords []string) (float64, []string) {
	titleLower := strings.ToLower(chunk.Title)
	bodyLower := strings.ToLower(chunk.Content)

	var score float64
	var matched []string
	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		tf := strings.Count(bodyLower, kwLower) + strings.Count(titleLower, kwLower)
		if tf == 0 {
			continue
		}
		matched = append(matched, kw)

		term := math.Log1p(float64(tf))
		if strings.Contains(titleLower, kwLower) {
			term *= headingBoost
		}
		score += term
	}

	if score == 0 {
		return 0, nil
	}

	// Inverse-length normalisation: dampen large chunks that accumulate
	// occurrences by volume.
	score /= math.Log(float64(chunk.LineCount()) + math.E)

	if chunk.Root == domain.RootPrimary {
		score *= primaryBoost
	}

	// Reward keyword diversity over repetition of a single term.
	score += diversityWeight * math.Sqrt(float64(len(matched)))

	return score, matched
}
