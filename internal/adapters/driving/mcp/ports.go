package mcp

import (
	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers documentation queries.
	Ask driving.AskService

	// Knowledge reports the knowledge-base structure.
	Knowledge driving.KnowledgeService

	// Maintenance handles cache and session bookkeeping.
	Maintenance driving.MaintenanceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	if p.Maintenance == nil {
		return ErrMissingMaintenanceService
	}
	return nil
}
