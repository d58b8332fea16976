// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Ruminate. It lets AI assistants like Claude query the local project
// documentation.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingAskService         = errors.New("mcp: ask service is required")
	ErrMissingKnowledgeService   = errors.New("mcp: knowledge service is required")
	ErrMissingMaintenanceService = errors.New("mcp: maintenance service is required")
)
