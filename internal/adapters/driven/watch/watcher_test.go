package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
)

// countingCache records Clear calls.
type countingCache struct {
	mu     sync.Mutex
	clears int
}

func (c *countingCache) Get(_ string) (driven.CacheEntry, bool) { return driven.CacheEntry{}, false }
func (c *countingCache) Put(_ string, _ driven.CacheEntry)      {}

func (c *countingCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
	return 1
}

func (c *countingCache) Len() int { return 0 }

func (c *countingCache) clearCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

func TestWatcher_ClearsCacheOnWrite(t *testing.T) {
	dir := t.TempDir()
	cache := &countingCache{}

	w, err := NewWatcher([]domain.SearchRoot{
		{Path: dir, Priority: domain.RootSecondary},
	}, cache)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# Doc\n"), 0600))

	assert.Eventually(t, func() bool {
		return cache.clearCount() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_FileRootWatchesParent(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "CLAUDE.md")
	require.NoError(t, os.WriteFile(rules, []byte("# Rules\n"), 0600))

	cache := &countingCache{}
	w, err := NewWatcher([]domain.SearchRoot{
		{Path: rules, Priority: domain.RootPrimary},
	}, cache)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(rules, []byte("# Rules\nchanged\n"), 0600))

	assert.Eventually(t, func() bool {
		return cache.clearCount() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingRootIgnored(t *testing.T) {
	cache := &countingCache{}

	w, err := NewWatcher([]domain.SearchRoot{
		{Path: filepath.Join(t.TempDir(), "absent"), Priority: domain.RootSecondary},
	}, cache)

	require.NoError(t, err)
	require.NoError(t, w.Close())
}
