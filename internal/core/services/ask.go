package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driving"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// Ensure AskService implements the interfaces.
var (
	_ driving.AskService         = (*AskService)(nil)
	_ driving.MaintenanceService = (*AskService)(nil)
)

// searchUnavailableAnswer is returned when the external search tool
// cannot run. The caller sees a labelled degraded answer, never an
// unhandled failure.
const searchUnavailableAnswer = "Search is unavailable: the external search tool could not be run. " +
	"Install ripgrep (or grep) and retry."

// AskService runs the search-rank-distill pipeline. Each query executes
// synchronously; the only shared mutable state is the response cache and
// the session accumulator, both safe for concurrent use.
type AskService struct {
	settings  domain.Settings
	searcher  driven.TextSearcher
	cache     driven.ResponseCache
	knowledge *KnowledgeService

	extractor  *KeywordExtractor
	chunker    *Chunker
	ranker     *Ranker
	dedupe     *Deduplicator
	classifier *Classifier
	distiller  *Distiller

	session sessionAccumulator
}

// NewAskService wires the pipeline components from settings. llm may be
// nil; distillation then always takes the fallback path.
func NewAskService(
	settings domain.Settings,
	searcher driven.TextSearcher,
	llm driven.LLMService,
	cache driven.ResponseCache,
	opts ...ChunkerOption,
) *AskService {
	return &AskService{
		settings:   settings,
		searcher:   searcher,
		cache:      cache,
		knowledge:  NewKnowledgeService(settings),
		extractor:  NewKeywordExtractor(),
		chunker:    NewChunker(settings.WindowLines, opts...),
		ranker:     NewRanker(settings.TopChunks),
		dedupe:     NewDeduplicator(settings.DedupeThreshold),
		classifier: NewClassifier(),
		distiller:  NewDistiller(llm, nil),
	}
}

// Ask answers a query from the knowledge base. Only an empty query or a
// caller cancellation returns an error; every external failure degrades
// to a labelled answer.
func (s *AskService) Ask(ctx context.Context, query, queryContext string) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, domain.ErrInvalidQuery
	}

	logger.Section("Ask Pipeline")
	logger.Debug("Query: %q context: %q", query, queryContext)

	class := s.classifier.Classify(query)
	budget := s.settings.BudgetFor(class)
	logger.Info("Query class: %s, token budget: %d", class, budget)

	roots := s.knowledge.Roots()
	if len(roots) == 0 {
		return s.finish(domain.Answer{
			Text: fmt.Sprintf(
				"No knowledge base found. Expected %s in workspace root and/or %s/ folder with documentation.",
				s.settings.RulesFile, s.settings.DocsFolder),
			Stats: domain.AnswerStats{QueryClass: class, Budget: budget, Degraded: true},
		}), nil
	}

	searchQuery := query
	if queryContext != "" {
		searchQuery += " " + queryContext
	}
	keywords := s.extractor.Extract(searchQuery)
	logger.Debug("Keywords: %v", keywords)

	key := cacheKey(query, queryContext, roots)
	if entry, ok := s.cache.Get(key); ok {
		logger.Info("Cache hit")
		answer := entry.Answer
		answer.Stats.Cached = true
		return s.finish(answer), nil
	}

	matches, err := s.searcher.Search(ctx, keywords, roots)
	if err != nil {
		// Caller cancellation propagates; a search-side timeout degrades.
		if ctx.Err() != nil {
			return domain.Answer{}, ctx.Err()
		}
		logger.Warn("Search unavailable: %v", err)
		return s.finish(domain.Answer{
			Text:  searchUnavailableAnswer,
			Stats: domain.AnswerStats{QueryClass: class, Budget: budget, Degraded: true},
		}), nil
	}
	logger.Debug("Raw matches: %d", len(matches))

	chunks := s.chunker.ChunkMatches(matches)
	logger.Debug("Chunks: %d", len(chunks))

	ranked := s.ranker.Rank(chunks, keywords)
	deduped := s.dedupe.Dedupe(ranked)
	logger.Debug("Ranked %d, deduplicated to %d", len(ranked), len(deduped))

	if len(deduped) == 0 {
		return s.finish(domain.Answer{
			Text:  fmt.Sprintf("No relevant information found for query: %s", query),
			Stats: domain.AnswerStats{QueryClass: class, Budget: budget},
		}), nil
	}

	answer := s.distiller.Distill(ctx, query, queryContext, deduped, class, budget)

	// Memoise only complete distillations. Degraded answers and
	// cancelled queries never write partial entries.
	if !answer.Stats.Degraded && ctx.Err() == nil {
		s.cache.Put(key, driven.CacheEntry{Answer: answer, CreatedAt: time.Now()})
	}

	return s.finish(answer), nil
}

// finish records the answer in the session accumulator and returns it.
func (s *AskService) finish(answer domain.Answer) domain.Answer {
	s.session.record(answer.Stats)
	return answer
}

// ClearCache removes all cached answers.
func (s *AskService) ClearCache() int {
	n := s.cache.Clear()
	logger.Info("Cleared %d cached answers", n)
	return n
}

// SessionStats returns a snapshot of accumulated usage statistics.
func (s *AskService) SessionStats() domain.SessionStats {
	return s.session.snapshot()
}

// ResetSessionStats zeroes the usage accumulator.
func (s *AskService) ResetSessionStats() {
	s.session.reset()
}

// cacheKey derives the deterministic cache key from the normalised
// query, normalised context, and the knowledge-base fingerprint.
func cacheKey(query, queryContext string, roots []domain.SearchRoot) string {
	h := sha256.New()
	h.Write([]byte(NormaliseText(query)))
	h.Write([]byte{0})
	h.Write([]byte(NormaliseText(queryContext)))
	h.Write([]byte{0})
	h.Write([]byte(Fingerprint(roots)))
	return hex.EncodeToString(h.Sum(nil))
}
