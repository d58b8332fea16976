// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService provides the external summarisation capability used by the
// distiller. This is an optional service - when nil, distillation
// degrades gracefully to raw ranked chunks.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a completion for a prompt and reports token usage.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (GenerateResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// GenerateResult is the completion text plus usage accounting.
type GenerateResult struct {
	// Text is the generated completion.
	Text string

	// InputTokens is the prompt token count reported by the service.
	InputTokens int

	// OutputTokens is the completion token count reported by the service.
	OutputTokens int
}
