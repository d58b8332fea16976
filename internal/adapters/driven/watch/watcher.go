// Package watch invalidates cached answers when the knowledge base
// changes on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// Watcher observes the knowledge base roots and clears the response
// cache whenever a file under them is written, created, removed or
// renamed. Cached answers for the old content would otherwise survive
// until their TTL.
type Watcher struct {
	cache   driven.ResponseCache
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher over the given roots. Directory roots
// are watched recursively; file roots are watched via their parent
// directory because editors replace files on save.
func NewWatcher(roots []domain.SearchRoot, cache driven.ResponseCache) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cache:   cache,
		watcher: fsw,
	}

	for _, root := range roots {
		if err := w.add(root.Path); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run processes events until ctx is cancelled. It is meant to be
// launched in its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// New subdirectories need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				logger.Warn("watch add %s: %v", event.Name, err)
			}
		}
	}

	n := w.cache.Clear()
	if n > 0 {
		logger.Info("knowledge base changed (%s), cleared %d cached answers", event.Name, n)
	}
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return w.watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				logger.Warn("watch add %s: %v", p, err)
			}
		}
		return nil
	})
}
