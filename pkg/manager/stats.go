package manager

import (
	"context"
	"fmt"
	"time"
)

// SyncStats summarizes the mirror for the stats endpoint and CLI
type SyncStats struct {
	TotalItems   int        `json:"totalItems"`
	Movies       int        `json:"movies"`
	Shows        int        `json:"shows"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
	SyncAgeHours *float64   `json:"syncAgeHours,omitempty"`
}

// GetSyncStats reads the aggregate mirror counts and derives the sync age
func (m MediaManager) GetSyncStats(ctx context.Context) (*SyncStats, error) {
	stats, err := m.storage.GetLibraryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read library stats: %w", err)
	}

	result := &SyncStats{
		TotalItems:   stats.TotalItems,
		Movies:       stats.Movies,
		Shows:        stats.Shows,
		LastSyncTime: stats.LastSyncedAt,
	}

	if stats.LastSyncedAt != nil {
		age := time.Since(*stats.LastSyncedAt).Hours()
		result.SyncAgeHours = &age
	}

	return result, nil
}
