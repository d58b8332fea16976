package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driving"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService reports the structure of the knowledge base.
type KnowledgeService struct {
	settings domain.Settings
}

// NewKnowledgeService creates a knowledge service for the configured
// workspace.
func NewKnowledgeService(settings domain.Settings) *KnowledgeService {
	return &KnowledgeService{settings: settings}
}

// Roots returns the existing knowledge-base roots, rules file first.
// An empty slice means there is no knowledge base.
func (s *KnowledgeService) Roots() []domain.SearchRoot {
	var roots []domain.SearchRoot
	if info, err := os.Stat(s.settings.RulesFilePath()); err == nil && !info.IsDir() {
		roots = append(roots, domain.SearchRoot{
			Path:     s.settings.RulesFilePath(),
			Priority: domain.RootPrimary,
		})
	}
	if info, err := os.Stat(s.settings.DocsFolderPath()); err == nil && info.IsDir() {
		roots = append(roots, domain.SearchRoot{
			Path:     s.settings.DocsFolderPath(),
			Priority: domain.RootSecondary,
		})
	}
	return roots
}

// List returns the knowledge-base files and sizes: the rules file, then
// the top level of the docs folder with per-directory file counts.
func (s *KnowledgeService) List(_ context.Context) (domain.Listing, error) {
	listing := domain.Listing{Workspace: s.settings.Workspace}

	if info, err := os.Stat(s.settings.RulesFilePath()); err == nil && !info.IsDir() {
		listing.Entries = append(listing.Entries, domain.ListingEntry{
			Path:      s.settings.RulesFile,
			SizeBytes: info.Size(),
			Root:      domain.RootPrimary,
		})
	}

	docsPath := s.settings.DocsFolderPath()
	if entries, err := os.ReadDir(docsPath); err == nil {
		for _, entry := range entries {
			rel := filepath.Join(s.settings.DocsFolder, entry.Name())
			if entry.IsDir() {
				listing.Entries = append(listing.Entries, domain.ListingEntry{
					Path:      rel,
					Dir:       true,
					FileCount: countFiles(filepath.Join(docsPath, entry.Name())),
					Root:      domain.RootSecondary,
				})
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			listing.Entries = append(listing.Entries, domain.ListingEntry{
				Path:      rel,
				SizeBytes: info.Size(),
				Root:      domain.RootSecondary,
			})
		}
	}

	if len(listing.Entries) == 0 {
		return domain.Listing{}, domain.ErrNoKnowledgeBase
	}
	return listing, nil
}

// countFiles counts the immediate entries of a directory.
func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	return len(entries)
}

// Fingerprint summarises the current state of the knowledge base as a
// hex digest of every file's path, size, and modification time. It
// changes whenever any searched file changes, so cache keys derived
// from it invalidate on documentation edits without waiting for TTL.
func Fingerprint(roots []domain.SearchRoot) string {
	h := sha256.New()

	var record []string
	for _, root := range roots {
		filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error { //nolint:errcheck
			if err != nil || d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			record = append(record, fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()))
			return nil
		})
	}

	sort.Strings(record)
	for _, r := range record {
		h.Write([]byte(r))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
