package services

import (
	"sync"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// sessionAccumulator tracks usage statistics for the process lifetime.
// Guarded by a mutex because the MCP host may dispatch queries
// concurrently.
type sessionAccumulator struct {
	mu    sync.Mutex
	stats domain.SessionStats
}

// record adds one answered query to the totals.
func (s *sessionAccumulator) record(stats domain.AnswerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.QueryCount++
	s.stats.TotalInputTokens += stats.InputTokens
	s.stats.TotalOutputTokens += stats.OutputTokens
	if stats.Cached {
		s.stats.CachedCount++
	}
}

// snapshot returns a copy of the current totals.
func (s *sessionAccumulator) snapshot() domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// reset zeroes the totals.
func (s *sessionAccumulator) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = domain.SessionStats{}
}
