package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	e := NewKeywordExtractor()

	keywords := e.Extract("How do I configure the retry backoff?")

	assert.Equal(t, []string{"configure", "retry", "backoff"}, keywords)
}

func TestKeywordExtractor_Extract_Lowercases(t *testing.T) {
	e := NewKeywordExtractor()

	keywords := e.Extract("Configure RETRY Backoff")

	assert.Equal(t, []string{"configure", "retry", "backoff"}, keywords)
}

func TestKeywordExtractor_Extract_DedupesPreservingOrder(t *testing.T) {
	e := NewKeywordExtractor()

	keywords := e.Extract("retry retry backoff retry")

	assert.Equal(t, []string{"retry", "backoff"}, keywords)
}

func TestKeywordExtractor_Extract_KeepsIdentifiers(t *testing.T) {
	e := NewKeywordExtractor()

	keywords := e.Extract("what does handle_request do with max_retries")

	assert.Equal(t, []string{"handle_request", "max_retries"}, keywords)
}

func TestKeywordExtractor_Extract_DropsShortTokens(t *testing.T) {
	e := NewKeywordExtractor()

	keywords := e.Extract("x y database")

	assert.Equal(t, []string{"database"}, keywords)
}

func TestKeywordExtractor_Extract_AllStopWordsFallsBack(t *testing.T) {
	e := NewKeywordExtractor()

	// Every token filtered: the whole normalised query becomes the keyword
	// so search still executes.
	keywords := e.Extract("what is this")

	assert.Equal(t, []string{"what is this"}, keywords)
}

func TestKeywordExtractor_Extract_Blank(t *testing.T) {
	e := NewKeywordExtractor()

	assert.Empty(t, e.Extract("   "))
}

func TestKeywordExtractor_CustomStopWords(t *testing.T) {
	e := NewKeywordExtractorWithStopWords([]string{"widget"})

	keywords := e.Extract("widget frobnicator")

	assert.Equal(t, []string{"frobnicator"}, keywords)
}

func TestNormaliseText(t *testing.T) {
	assert.Equal(t, "hello world", NormaliseText("  Hello \t World \n"))
	assert.Equal(t, "", NormaliseText("   "))
}
