package driving

import "github.com/lodestone-labs/ruminate-cli/internal/core/domain"

// MaintenanceService exposes cache and session bookkeeping operations.
type MaintenanceService interface {
	// ClearCache removes all cached answers and returns the number of
	// entries removed. Used to force re-distillation after documentation
	// changes.
	ClearCache() int

	// SessionStats returns a snapshot of accumulated usage statistics.
	SessionStats() domain.SessionStats

	// ResetSessionStats zeroes the usage accumulator.
	ResetSessionStats()
}
