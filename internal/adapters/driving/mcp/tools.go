package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query   string `json:"query" jsonschema:"the question to answer from the project documentation"`
	Context string `json:"context,omitempty" jsonschema:"optional context hint, e.g. the current file or topic"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer       string `json:"answer"`
	QueryClass   string `json:"query_class"`
	Budget       int    `json:"budget"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	Cached       bool   `json:"cached"`
	Degraded     bool   `json:"degraded"`
}

// ListInput is the input schema for the list tool.
type ListInput struct{}

// ListEntryOutput represents one knowledge-base entry.
type ListEntryOutput struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Dir       bool   `json:"dir,omitempty"`
	FileCount int    `json:"file_count,omitempty"`
}

// ListOutput is the output schema for the list tool.
type ListOutput struct {
	Workspace string            `json:"workspace"`
	Entries   []ListEntryOutput `json:"entries"`
	Count     int               `json:"count"`
	Message   string            `json:"message,omitempty"`
}

// ClearCacheInput is the input schema for the clear_cache tool.
type ClearCacheInput struct{}

// ClearCacheOutput is the output schema for the clear_cache tool.
type ClearCacheOutput struct {
	Removed int `json:"removed"`
}

// SessionStatsInput is the input schema for the session stats tools.
type SessionStatsInput struct{}

// SessionStatsOutput is the output schema for the session stats tools.
type SessionStatsOutput struct {
	TotalInputTokens  int `json:"total_input_tokens"`
	TotalOutputTokens int `json:"total_output_tokens"`
	QueryCount        int `json:"query_count"`
	CachedCount       int `json:"cached_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from this project's documentation (rules file and docs folder)",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list",
		Description: "List the documentation files that back the ask tool",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Clear cached answers so the next ask searches and distills again",
	}, s.handleClearCache)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_session_stats",
		Description: "Get accumulated token usage for this server session",
	}, s.handleGetSessionStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset_session_stats",
		Description: "Reset the session token usage counters",
	}, s.handleResetSessionStats)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, input.Query, input.Context)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:       answer.Text,
		QueryClass:   answer.Stats.QueryClass.String(),
		Budget:       answer.Stats.Budget,
		InputTokens:  answer.Stats.InputTokens,
		OutputTokens: answer.Stats.OutputTokens,
		Cached:       answer.Stats.Cached,
		Degraded:     answer.Stats.Degraded,
	}, nil
}

// handleList handles the list tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	listing, err := s.ports.Knowledge.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoKnowledgeBase) {
			return nil, ListOutput{
				Workspace: listing.Workspace,
				Entries:   []ListEntryOutput{},
				Message:   "No knowledge base found in this workspace.",
			}, nil
		}
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Workspace: listing.Workspace,
		Entries:   make([]ListEntryOutput, len(listing.Entries)),
		Count:     len(listing.Entries),
	}
	for i := range listing.Entries {
		output.Entries[i] = ListEntryOutput{
			Path:      listing.Entries[i].Path,
			SizeBytes: listing.Entries[i].SizeBytes,
			Dir:       listing.Entries[i].Dir,
			FileCount: listing.Entries[i].FileCount,
		}
	}

	return nil, output, nil
}

// handleClearCache handles the clear_cache tool invocation.
func (s *Server) handleClearCache(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ClearCacheInput,
) (*mcp.CallToolResult, ClearCacheOutput, error) {
	return nil, ClearCacheOutput{Removed: s.ports.Maintenance.ClearCache()}, nil
}

// handleGetSessionStats handles the get_session_stats tool invocation.
func (s *Server) handleGetSessionStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SessionStatsInput,
) (*mcp.CallToolResult, SessionStatsOutput, error) {
	stats := s.ports.Maintenance.SessionStats()
	return nil, SessionStatsOutput{
		TotalInputTokens:  stats.TotalInputTokens,
		TotalOutputTokens: stats.TotalOutputTokens,
		QueryCount:        stats.QueryCount,
		CachedCount:       stats.CachedCount,
	}, nil
}

// handleResetSessionStats handles the reset_session_stats tool invocation.
func (s *Server) handleResetSessionStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SessionStatsInput,
) (*mcp.CallToolResult, SessionStatsOutput, error) {
	s.ports.Maintenance.ResetSessionStats()
	stats := s.ports.Maintenance.SessionStats()
	return nil, SessionStatsOutput{
		TotalInputTokens:  stats.TotalInputTokens,
		TotalOutputTokens: stats.TotalOutputTokens,
		QueryCount:        stats.QueryCount,
		CachedCount:       stats.CachedCount,
	}, nil
}
