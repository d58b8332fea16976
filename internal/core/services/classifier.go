package services

import (
	"strings"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// Trigger tables for query classification. Matched as substrings of the
// lowercased query, so multi-word triggers like "how to" work. Kept as
// data so they are testable independent of the pipeline.
var (
	// defaultComplexTriggers indicate architecture or analysis questions.
	defaultComplexTriggers = []string{
		"explain", "architecture", "design", "complex", "overview",
		"understand", "describe", "analyze", "analyse", "compare",
		"difference",
	}

	// defaultCodeTriggers indicate requests for code or implementation
	// samples.
	defaultCodeTriggers = []string{
		"example", "code", "pattern", "how to", "implement",
		"snippet", "sample", "template", "show me", "write",
	}
)

// Classifier inspects query text to choose a response size budget class.
// Complex takes precedence over CodeExample when both trigger sets
// match, since an analysis question implies the larger need.
type Classifier struct {
	complexTriggers []string
	codeTriggers    []string
}

// NewClassifier creates a classifier with the default trigger tables.
func NewClassifier() *Classifier {
	return NewClassifierWithTriggers(defaultComplexTriggers, defaultCodeTriggers)
}

// NewClassifierWithTriggers creates a classifier with custom trigger
// tables.
func NewClassifierWithTriggers(complexTriggers, codeTriggers []string) *Classifier {
	return &Classifier{
		complexTriggers: complexTriggers,
		codeTriggers:    codeTriggers,
	}
}

// Classify returns the query class. Derived purely from the query text;
// empty or unmatched queries are Simple.
func (c *Classifier) Classify(query string) domain.QueryClass {
	q := strings.ToLower(query)

	for _, trigger := range c.complexTriggers {
		if strings.Contains(q, trigger) {
			return domain.ClassComplex
		}
	}
	for _, trigger := range c.codeTriggers {
		if strings.Contains(q, trigger) {
			return domain.ClassCodeExample
		}
	}
	return domain.ClassSimple
}
