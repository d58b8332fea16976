package mcp

import (
	"context"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// mockAsk is a scriptable driving.AskService.
type mockAsk struct {
	answer      domain.Answer
	err         error
	lastQuery   string
	lastContext string
}

func (m *mockAsk) Ask(_ context.Context, query, queryContext string) (domain.Answer, error) {
	m.lastQuery = query
	m.lastContext = queryContext
	return m.answer, m.err
}

// mockKnowledge is a scriptable driving.KnowledgeService.
type mockKnowledge struct {
	listing domain.Listing
	err     error
}

func (m *mockKnowledge) List(_ context.Context) (domain.Listing, error) {
	return m.listing, m.err
}

// mockMaintenance is a scriptable driving.MaintenanceService.
type mockMaintenance struct {
	cleared int
	stats   domain.SessionStats
	resets  int
}

func (m *mockMaintenance) ClearCache() int { return m.cleared }

func (m *mockMaintenance) SessionStats() domain.SessionStats { return m.stats }

func (m *mockMaintenance) ResetSessionStats() {
	m.resets++
	m.stats = domain.SessionStats{}
}

func validPorts() *Ports {
	return &Ports{
		Ask:         &mockAsk{},
		Knowledge:   &mockKnowledge{},
		Maintenance: &mockMaintenance{},
	}
}
