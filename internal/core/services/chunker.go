package services

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// headingPattern matches a markdown heading line and captures its level
// marker and title.
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// fencePattern matches the start or end of a fenced code block.
var fencePattern = regexp.MustCompile("^(```|~~~)")

// Chunker splits matched file content into semantically bounded
// fragments. Markdown matches expand to their enclosing heading section
// or fenced code block; headingless files fall back to a fixed sliding
// window with overlapping windows merged.
type Chunker struct {
	windowLines int
	readFile    func(path string) (string, error)
}

// ChunkerOption configures the chunker.
type ChunkerOption func(*Chunker)

// WithReadFile replaces the file reader. Used by tests to avoid disk IO.
func WithReadFile(fn func(path string) (string, error)) ChunkerOption {
	return func(c *Chunker) {
		if fn != nil {
			c.readFile = fn
		}
	}
}

// NewChunker creates a chunker with the given sliding-window radius.
func NewChunker(windowLines int, opts ...ChunkerOption) *Chunker {
	if windowLines <= 0 {
		windowLines = domain.DefaultWindowLines
	}
	c := &Chunker{
		windowLines: windowLines,
		readFile: func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fileStructure is the parsed heading and code-fence layout of one file.
type fileStructure struct {
	lines    []string
	headings []headingMark
	fences   []lineRange
}

// headingMark is one markdown heading with its position and level.
type headingMark struct {
	idx   int // 0-indexed line
	level int
	title string
}

// lineRange is a half-open candidate region in 0-indexed lines, both
// bounds inclusive.
type lineRange struct {
	start int
	end   int
	title string
}

// ChunkMatches groups raw matches by file and expands each match to a
// bounded chunk. Chunks from the same file never overlap: overlapping
// candidate regions are merged before chunks are built.
func (c *Chunker) ChunkMatches(matches []domain.RawMatch) []domain.Chunk {
	if len(matches) == 0 {
		return nil
	}

	type fileGroup struct {
		root  domain.RootPriority
		lines []int // 1-indexed match lines
	}
	groups := make(map[string]*fileGroup)
	for _, m := range matches {
		g, ok := groups[m.File]
		if !ok {
			g = &fileGroup{root: m.Root}
			groups[m.File] = g
		}
		g.lines = append(g.lines, m.Line)
	}

	// Deterministic file order: primary root first, then path.
	files := make([]string, 0, len(groups))
	for f := range groups {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		gi, gj := groups[files[i]], groups[files[j]]
		if gi.root != gj.root {
			return gi.root < gj.root
		}
		return files[i] < files[j]
	})

	var chunks []domain.Chunk
	for _, file := range files {
		g := groups[file]
		content, err := c.readFile(file)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", file, err)
			continue
		}
		chunks = append(chunks, c.chunkFile(file, g.root, content, g.lines)...)
	}
	return chunks
}

// chunkFile expands the match lines of one file into merged chunks.
func (c *Chunker) chunkFile(file string, root domain.RootPriority, content string, matchLines []int) []domain.Chunk {
	fs := parseStructure(content)
	if len(fs.lines) == 0 {
		return nil
	}

	var regions []lineRange
	seen := make(map[[2]int]struct{})
	for _, ln := range matchLines {
		idx := ln - 1
		if idx < 0 || idx >= len(fs.lines) {
			continue
		}
		r := c.regionFor(fs, idx)
		key := [2]int{r.start, r.end}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		regions = append(regions, r)
	}
	if len(regions) == 0 {
		return nil
	}

	regions = mergeRegions(regions)

	chunks := make([]domain.Chunk, 0, len(regions))
	for _, r := range regions {
		text := strings.Join(fs.lines[r.start:r.end+1], "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:        uuid.New().String(),
			Root:      root,
			File:      file,
			Title:     r.title,
			StartLine: r.start + 1,
			EndLine:   r.end + 1,
			Content:   text,
		})
	}
	return chunks
}

// regionFor chooses the chunk boundary for one match line: the enclosing
// code fence, else the enclosing heading section, else a sliding window.
func (c *Chunker) regionFor(fs fileStructure, idx int) lineRange {
	for _, f := range fs.fences {
		if idx >= f.start && idx <= f.end {
			return lineRange{start: f.start, end: f.end, title: titleBefore(fs.headings, f.start)}
		}
	}

	if len(fs.headings) > 0 {
		return sectionFor(fs, idx)
	}

	start := idx - c.windowLines
	if start < 0 {
		start = 0
	}
	end := idx + c.windowLines
	if end > len(fs.lines)-1 {
		end = len(fs.lines) - 1
	}
	return lineRange{start: start, end: end}
}

// sectionFor returns the heading section enclosing idx: from the nearest
// heading at or before idx to the line before the next heading of equal
// or higher level, or end of file.
func sectionFor(fs fileStructure, idx int) lineRange {
	cur := -1
	for i, h := range fs.headings {
		if h.idx > idx {
			break
		}
		cur = i
	}

	if cur < 0 {
		// Match precedes the first heading: preamble section.
		return lineRange{start: 0, end: fs.headings[0].idx - 1}
	}

	h := fs.headings[cur]
	end := len(fs.lines) - 1
	for _, next := range fs.headings[cur+1:] {
		if next.level <= h.level {
			end = next.idx - 1
			break
		}
	}
	return lineRange{start: h.idx, end: end, title: h.title}
}

// titleBefore returns the title of the nearest heading at or before idx.
func titleBefore(headings []headingMark, idx int) string {
	title := ""
	for _, h := range headings {
		if h.idx > idx {
			break
		}
		title = h.title
	}
	return title
}

// parseStructure scans a file once for headings and fenced code blocks.
// Heading markers inside fences are ignored. An unterminated fence runs
// to end of file.
func parseStructure(content string) fileStructure {
	lines := strings.Split(content, "\n")
	fs := fileStructure{lines: lines}

	inFence := false
	fenceStart := 0
	for i, line := range lines {
		if fencePattern.MatchString(line) {
			if inFence {
				fs.fences = append(fs.fences, lineRange{start: fenceStart, end: i})
				inFence = false
			} else {
				inFence = true
				fenceStart = i
			}
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			fs.headings = append(fs.headings, headingMark{
				idx:   i,
				level: len(m[1]),
				title: strings.TrimSpace(m[2]),
			})
		}
	}
	if inFence {
		fs.fences = append(fs.fences, lineRange{start: fenceStart, end: len(lines) - 1})
	}
	return fs
}

// mergeRegions sorts candidate regions and merges any that overlap,
// keeping the first non-empty title.
func mergeRegions(regions []lineRange) []lineRange {
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].start != regions[j].start {
			return regions[i].start < regions[j].start
		}
		return regions[i].end < regions[j].end
	})

	merged := regions[:1]
	for _, r := range regions[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			if last.title == "" {
				last.title = r.title
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
