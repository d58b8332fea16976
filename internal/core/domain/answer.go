package domain

// AnswerStats describes how an answer was produced.
type AnswerStats struct {
	// InputTokens is the token count sent to the summarisation service,
	// or an estimate when distillation degraded.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the token count of the answer.
	OutputTokens int `json:"output_tokens"`

	// Budget is the token budget chosen by query classification.
	Budget int `json:"budget"`

	// QueryClass is the classification that chose the budget.
	QueryClass QueryClass `json:"query_class"`

	// Cached is true when the answer was served from the response cache.
	Cached bool `json:"cached"`

	// Degraded is true when distillation was unavailable or failed and
	// the answer fell back to raw ranked chunks.
	Degraded bool `json:"degraded"`
}

// Answer is the final response for one query.
type Answer struct {
	// Text is the answer body.
	Text string `json:"answer"`

	// Stats describes how the answer was produced.
	Stats AnswerStats `json:"stats"`
}

// SessionStats accumulates usage across all queries in the process
// lifetime.
type SessionStats struct {
	// TotalInputTokens sums input tokens across queries.
	TotalInputTokens int `json:"total_input_tokens"`

	// TotalOutputTokens sums output tokens across queries.
	TotalOutputTokens int `json:"total_output_tokens"`

	// QueryCount is the number of queries served.
	QueryCount int `json:"query_count"`

	// CachedCount is the number of queries served from cache.
	CachedCount int `json:"cached_count"`
}
