package services

import (
	"regexp"
	"strings"
)

// defaultStopWords are filtered out of queries before search. Articles,
// prepositions, pronouns, and common verbs of inquiry carry no retrieval
// signal. Kept as a data table so it is testable independent of the
// pipeline.
var defaultStopWords = []string{
	"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "must", "shall", "can", "need", "dare",
	"ought", "used", "to", "of", "in", "for", "on", "with", "at", "by",
	"from", "as", "into", "through", "during", "before", "after", "above",
	"below", "between", "under", "again", "further", "then", "once", "here",
	"there", "when", "where", "why", "how", "all", "each", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own",
	"same", "so", "than", "too", "very", "just", "also", "now", "i", "me",
	"my", "myself", "we", "our", "ours", "you", "your", "yours", "he", "him",
	"his", "she", "her", "hers", "it", "its", "they", "them", "their",
	"what", "which", "who", "whom", "this", "that", "these", "those", "am",
}

// tokenPattern matches identifier-like tokens: a letter or underscore
// followed by word characters.
var tokenPattern = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)

// KeywordExtractor turns a free-text query into a small set of salient
// search terms.
type KeywordExtractor struct {
	stopWords map[string]struct{}
}

// NewKeywordExtractor creates an extractor with the default stop-word
// table.
func NewKeywordExtractor() *KeywordExtractor {
	return NewKeywordExtractorWithStopWords(defaultStopWords)
}

// NewKeywordExtractorWithStopWords creates an extractor with a custom
// stop-word table.
func NewKeywordExtractorWithStopWords(stopWords []string) *KeywordExtractor {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordExtractor{stopWords: set}
}

// Extract tokenises the query, lowercases, drops stop words and terms
// shorter than two characters, and collapses duplicates preserving the
// order of first occurrence.
//
// Extract never returns an empty set for a non-blank query: when every
// token is filtered out, the whole normalised query becomes the single
// keyword so downstream search still executes.
func (e *KeywordExtractor) Extract(query string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(query), -1)

	seen := make(map[string]struct{})
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}

	if len(keywords) == 0 {
		fallback := NormaliseText(query)
		if fallback != "" {
			keywords = append(keywords, fallback)
		}
	}

	return keywords
}

// NormaliseText lowercases and collapses all whitespace runs to single
// spaces. Used for the keyword fallback and for cache keys.
func NormaliseText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
