// Package tokeniser provides token counting and budget truncation for
// distilled answers. It uses the cl100k_base BPE encoding when its data
// is available and falls back to a four-characters-per-token estimate
// otherwise, so the pipeline never depends on network access.
package tokeniser

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/lodestone-labs/ruminate-cli/internal/logger"
)

// encodingName is the BPE encoding used for counting.
const encodingName = "cl100k_base"

// fallbackCharsPerToken is the rough chars-per-token ratio used when the
// encoding cannot be loaded.
const fallbackCharsPerToken = 4

// Counter counts and truncates text by token.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New creates a counter. A failure to load the encoding is not an
// error; the counter degrades to the character estimate.
func New() *Counter {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		logger.Warn("Token encoding unavailable, using character estimate: %v", err)
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the token count of text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.enc == nil {
		return (len(text) + fallbackCharsPerToken - 1) / fallbackCharsPerToken
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Truncate cuts text to at most maxTokens tokens.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return ""
	}
	if c.enc == nil {
		limit := maxTokens * fallbackCharsPerToken
		if len(text) <= limit {
			return text
		}
		return text[:limit]
	}
	tokens := c.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return c.enc.Decode(tokens[:maxTokens])
}
