package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for Ruminate resources.
const uriScheme = "ruminate://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource exposing the knowledge-base structure.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "knowledge",
		Name:        "knowledge",
		Description: "Structure of the project documentation searched by the ask tool",
		MIMEType:    "application/json",
	}, s.handleKnowledgeResource)
}

// handleKnowledgeResource returns the knowledge-base listing as JSON.
func (s *Server) handleKnowledgeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	listing, err := s.ports.Knowledge.List(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoKnowledgeBase) {
			return nil, err
		}
		// An empty workspace is not a protocol error.
		listing.Entries = nil
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
