package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
	"github.com/lodestone-labs/ruminate-cli/internal/logger"
	"github.com/lodestone-labs/ruminate-cli/internal/tokeniser"
)

// noInformationAnswer is returned when the ranked result is empty.
const noInformationAnswer = "No relevant information found in knowledge base."

// fallbackNotice prefixes answers built without distillation.
const fallbackNotice = "*[Distillation unavailable - showing raw search results]*"

// fallbackChunkLimit caps how many chunks a degraded answer includes.
const fallbackChunkLimit = 5

// Class-specific instruction blocks for the distillation prompt.
const (
	codeExampleInstructions = `Instructions for code examples:
- Include COMPLETE, working code snippets that can be used directly
- Show the full function or section, not just fragments
- Include necessary imports or dependencies
- Add brief comments explaining key parts
- Reference the source file paths`

	complexInstructions = `Instructions for detailed explanations:
- Provide comprehensive coverage of the topic
- Explain the reasoning and context
- Include relevant code examples where helpful
- Describe any gotchas or important considerations
- Reference source files for further reading`

	simpleInstructions = `Instructions for quick answers:
- Be concise and direct
- Focus on the most important information
- Include specific details (file paths, function names, values)
- Highlight any critical warnings or gotchas`
)

// Distiller compresses ranked chunks into a budgeted answer through the
// summarisation service. The service is a capability: when absent or
// failing, the distiller degrades to concatenated raw chunks truncated
// to the budget, never a hard failure.
type Distiller struct {
	llm    driven.LLMService
	tokens *tokeniser.Counter
}

// NewDistiller creates a distiller. llm may be nil, in which case every
// answer takes the fallback path.
func NewDistiller(llm driven.LLMService, tokens *tokeniser.Counter) *Distiller {
	if tokens == nil {
		tokens = tokeniser.New()
	}
	return &Distiller{llm: llm, tokens: tokens}
}

// Available reports whether the summarisation capability is configured.
func (d *Distiller) Available() bool {
	return d.llm != nil
}

// Distill produces the answer text and stats for the ranked chunks.
// An empty chunk list yields the explicit no-information answer.
func (d *Distiller) Distill(
	ctx context.Context,
	query, queryContext string,
	chunks []domain.ScoredChunk,
	class domain.QueryClass,
	budget int,
) domain.Answer {
	if len(chunks) == 0 {
		return domain.Answer{
			Text: noInformationAnswer,
			Stats: domain.AnswerStats{
				QueryClass: class,
				Budget:     budget,
			},
		}
	}

	if d.llm == nil {
		logger.Debug("No summarisation service configured, using fallback")
		return d.fallback(chunks, class, budget)
	}

	prompt := d.buildPrompt(query, queryContext, chunks, class, budget)
	result, err := d.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens: budget,
	})
	if err != nil {
		logger.Warn("Distillation failed, degrading to raw chunks: %v", err)
		return d.fallback(chunks, class, budget)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		text = noInformationAnswer
	}

	return domain.Answer{
		Text: text,
		Stats: domain.AnswerStats{
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
			Budget:       budget,
			QueryClass:   class,
		},
	}
}

// buildPrompt assembles the summarisation request from the query,
// optional context, and formatted chunk text.
func (d *Distiller) buildPrompt(
	query, queryContext string,
	chunks []domain.ScoredChunk,
	class domain.QueryClass,
	budget int,
) string {
	var instructions string
	switch class {
	case domain.ClassCodeExample:
		instructions = codeExampleInstructions
	case domain.ClassComplex:
		instructions = complexInstructions
	default:
		instructions = simpleInstructions
	}

	var b strings.Builder
	b.WriteString("You are a knowledge base assistant for a software development project.\n")
	b.WriteString("Extract relevant information to answer the query based on the provided context.\n\n")
	fmt.Fprintf(&b, "Query: %s\n", query)
	if queryContext != "" {
		fmt.Fprintf(&b, "Current context: %s\n", queryContext)
	}
	b.WriteString("\n")
	b.WriteString(instructions)
	b.WriteString("\n\nContext from knowledge base:\n")
	b.WriteString(FormatChunks(chunks))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Provide a helpful response in up to %d tokens.\n", budget)
	b.WriteString("If the context doesn't contain relevant information, say so clearly.\n")
	b.WriteString("Always include source file references when citing specific information.")
	return b.String()
}

// fallback concatenates the top chunks, truncated to the budget, and
// marks the stats as degraded.
func (d *Distiller) fallback(chunks []domain.ScoredChunk, class domain.QueryClass, budget int) domain.Answer {
	limit := len(chunks)
	if limit > fallbackChunkLimit {
		limit = fallbackChunkLimit
	}

	parts := []string{fallbackNotice}
	for i, sc := range chunks[:limit] {
		chunk := sc.Chunk
		header := fmt.Sprintf("**Source %d:** `%s`", i+1, chunk.File)
		if chunk.Title != "" {
			header += " - " + chunk.Title
		}
		header += fmt.Sprintf(" (lines %d-%d)", chunk.StartLine, chunk.EndLine)
		parts = append(parts, header+"\n"+chunk.Content)
	}

	text := d.tokens.Truncate(strings.Join(parts, "\n\n---\n\n"), budget)

	return domain.Answer{
		Text: text,
		Stats: domain.AnswerStats{
			InputTokens:  d.tokens.Count(text),
			OutputTokens: d.tokens.Count(text),
			Budget:       budget,
			QueryClass:   class,
			Degraded:     true,
		},
	}
}

// FormatChunks renders ranked chunks with source attribution headers for
// prompts and raw responses.
func FormatChunks(chunks []domain.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for i, sc := range chunks {
		chunk := sc.Chunk
		header := fmt.Sprintf("[Source %d: %s", i+1, chunk.File)
		if chunk.Title != "" {
			header += " - " + chunk.Title
		}
		header += fmt.Sprintf(", lines %d-%d]", chunk.StartLine, chunk.EndLine)
		parts = append(parts, header+"\n"+chunk.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
