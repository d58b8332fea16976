package domain

import "fmt"

// RawMatch is a single matching line reported by the full-text search
// tool, before any chunking or scoring.
type RawMatch struct {
	// Root is the knowledge-base root the match came from.
	Root RootPriority

	// File is the absolute path of the matched file.
	File string

	// Line is the 1-indexed line number of the match.
	Line int

	// Text is the matched line content, trimmed.
	Text string

	// Keyword is the first query keyword found in the line.
	Keyword string
}

// String returns the match in file:line: text form.
func (m RawMatch) String() string {
	return fmt.Sprintf("%s:%d: %s", m.File, m.Line, m.Text)
}
