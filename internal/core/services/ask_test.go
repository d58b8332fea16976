package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
)

// mockSearcher is a scriptable driven.TextSearcher.
type mockSearcher struct {
	matches      []domain.RawMatch
	err          error
	calls        int
	lastKeywords []string
}

func (m *mockSearcher) Search(_ context.Context, keywords []string, _ []domain.SearchRoot) ([]domain.RawMatch, error) {
	m.calls++
	m.lastKeywords = keywords
	return m.matches, m.err
}

// mapCache is an in-memory driven.ResponseCache without TTL.
type mapCache struct {
	entries map[string]driven.CacheEntry
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]driven.CacheEntry)}
}

func (c *mapCache) Get(key string) (driven.CacheEntry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *mapCache) Put(key string, entry driven.CacheEntry) {
	c.entries[key] = entry
}

func (c *mapCache) Clear() int {
	n := len(c.entries)
	c.entries = make(map[string]driven.CacheEntry)
	return n
}

func (c *mapCache) Len() int { return len(c.entries) }

// newWorkspace creates a workspace with a rules file and docs folder.
func newWorkspace(t *testing.T) domain.Settings {
	t.Helper()
	dir := t.TempDir()

	rules := "# Rules\n\n## Testing\nRun make test before pushing.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CLAUDE.md"), []byte(rules), 0600))

	docs := filepath.Join(dir, ".claude")
	require.NoError(t, os.Mkdir(docs, 0700))
	ci := "# CI\nThe pipeline runs make test on every push.\n"
	require.NoError(t, os.WriteFile(filepath.Join(docs, "ci.md"), []byte(ci), 0600))

	settings := domain.DefaultSettings()
	settings.Workspace = dir
	return settings
}

func newAskFixture(t *testing.T, settings domain.Settings, searcher *mockSearcher, llm driven.LLMService) (*AskService, *mapCache) {
	t.Helper()
	cache := newMapCache()
	return NewAskService(settings, searcher, llm, cache), cache
}

func TestAsk_EmptyQuery(t *testing.T) {
	svc, _ := newAskFixture(t, newWorkspace(t), &mockSearcher{}, nil)

	_, err := svc.Ask(context.Background(), "   ", "")

	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestAsk_NoKnowledgeBase(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Workspace = t.TempDir()
	searcher := &mockSearcher{}
	svc, _ := newAskFixture(t, settings, searcher, nil)

	answer, err := svc.Ask(context.Background(), "anything", "")

	require.NoError(t, err)
	assert.True(t, answer.Stats.Degraded)
	assert.Contains(t, answer.Text, "No knowledge base found")
	assert.Zero(t, searcher.calls)
}

func TestAsk_SearchUnavailableDegrades(t *testing.T) {
	searcher := &mockSearcher{err: domain.ErrSearchUnavailable}
	svc, _ := newAskFixture(t, newWorkspace(t), searcher, nil)

	answer, err := svc.Ask(context.Background(), "make test", "")

	require.NoError(t, err)
	assert.True(t, answer.Stats.Degraded)
	assert.Contains(t, answer.Text, "Search is unavailable")
}

func TestAsk_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	searcher := &mockSearcher{err: context.Canceled}
	svc, _ := newAskFixture(t, newWorkspace(t), searcher, nil)

	_, err := svc.Ask(ctx, "make test", "")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAsk_NoMatches(t *testing.T) {
	searcher := &mockSearcher{}
	svc, _ := newAskFixture(t, newWorkspace(t), searcher, nil)

	answer, err := svc.Ask(context.Background(), "zebra quantum", "")

	require.NoError(t, err)
	assert.False(t, answer.Stats.Degraded)
	assert.Contains(t, answer.Text, "No relevant information found for query: zebra quantum")
}

func TestAsk_FullPipeline(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{
		Text:         "Run make test.",
		InputTokens:  50,
		OutputTokens: 5,
	}}
	svc, cache := newAskFixture(t, settings, searcher, llm)

	answer, err := svc.Ask(context.Background(), "how do I run tests", "")

	require.NoError(t, err)
	assert.Equal(t, "Run make test.", answer.Text)
	assert.False(t, answer.Stats.Cached)
	assert.Equal(t, []string{"run", "tests"}, searcher.lastKeywords)
	assert.Equal(t, 1, cache.Len())
}

func TestAsk_CacheHit(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{Text: "Run make test."}}
	svc, _ := newAskFixture(t, settings, searcher, llm)

	first, err := svc.Ask(context.Background(), "how do I run tests", "")
	require.NoError(t, err)
	require.False(t, first.Stats.Cached)

	second, err := svc.Ask(context.Background(), "how do I run tests", "")
	require.NoError(t, err)

	assert.True(t, second.Stats.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, llm.calls)
}

func TestAsk_CacheKeyIncludesContext(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{Text: "ok"}}
	svc, _ := newAskFixture(t, settings, searcher, llm)

	_, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)
	second, err := svc.Ask(context.Background(), "run tests", "in ci.yml")
	require.NoError(t, err)

	assert.False(t, second.Stats.Cached)
	assert.Equal(t, 2, searcher.calls)
}

func TestAsk_FingerprintInvalidatesCacheOnEdit(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{Text: "ok"}}
	svc, _ := newAskFixture(t, settings, searcher, llm)

	_, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)

	// Grow the rules file so its size (and therefore the knowledge-base
	// fingerprint) changes.
	updated := "# Rules\n\n## Testing\nRun make test before pushing. Always.\n"
	require.NoError(t, os.WriteFile(rulesPath, []byte(updated), 0600))

	second, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)

	assert.False(t, second.Stats.Cached)
	assert.Equal(t, 2, searcher.calls)
}

func TestAsk_DegradedAnswerNotCached(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	svc, cache := newAskFixture(t, settings, searcher, nil)

	answer, err := svc.Ask(context.Background(), "run tests", "")

	require.NoError(t, err)
	assert.True(t, answer.Stats.Degraded)
	assert.Zero(t, cache.Len())
}

func TestAsk_ClassifiesAndBudgets(t *testing.T) {
	settings := newWorkspace(t)
	searcher := &mockSearcher{}
	svc, _ := newAskFixture(t, settings, searcher, nil)

	answer, err := svc.Ask(context.Background(), "explain the testing architecture", "")

	require.NoError(t, err)
	assert.Equal(t, domain.ClassComplex, answer.Stats.QueryClass)
	assert.Equal(t, settings.ComplexBudget, answer.Stats.Budget)
}

func TestAsk_SessionStatsAccumulate(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{
		Text:         "ok",
		InputTokens:  100,
		OutputTokens: 10,
	}}
	svc, _ := newAskFixture(t, settings, searcher, llm)

	_, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)

	stats := svc.SessionStats()
	assert.Equal(t, 2, stats.QueryCount)
	assert.Equal(t, 1, stats.CachedCount)
	assert.Equal(t, 200, stats.TotalInputTokens)
	assert.Equal(t, 20, stats.TotalOutputTokens)

	svc.ResetSessionStats()
	assert.Equal(t, domain.SessionStats{}, svc.SessionStats())
}

func TestAsk_ClearCache(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{Text: "ok"}}
	svc, _ := newAskFixture(t, settings, searcher, llm)

	_, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.ClearCache())
	assert.Equal(t, 0, svc.ClearCache())
}

func TestCacheKey_NormalisesQuery(t *testing.T) {
	roots := []domain.SearchRoot{}

	a := cacheKey("Run  Tests", "", roots)
	b := cacheKey("run tests", "", roots)
	c := cacheKey("run tests", "ctx", roots)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheEntry_CreatedAtSet(t *testing.T) {
	settings := newWorkspace(t)
	rulesPath := filepath.Join(settings.Workspace, "CLAUDE.md")
	searcher := &mockSearcher{matches: []domain.RawMatch{
		{Root: domain.RootPrimary, File: rulesPath, Line: 4, Text: "Run make test before pushing.", Keyword: "test"},
	}}
	llm := &mockLLM{result: driven.GenerateResult{Text: "ok"}}
	svc, cache := newAskFixture(t, settings, searcher, llm)

	before := time.Now()
	_, err := svc.Ask(context.Background(), "run tests", "")
	require.NoError(t, err)

	for _, entry := range cache.entries {
		assert.False(t, entry.CreatedAt.Before(before))
	}
}
