package manager

import (
	"context"
	"fmt"

	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/metrics"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
)

// MediaStatus is the authoritative availability state served to clients
type MediaStatus string

const (
	// StatusAvailable means the item is neither mirrored nor requested:
	// available to be requested
	StatusAvailable            MediaStatus = "available"
	StatusInLibrary            MediaStatus = "in_library"
	StatusPartiallyInLibrary   MediaStatus = "partially_in_library"
	StatusRequestedPending     MediaStatus = "requested_pending"
	StatusRequestedApproved    MediaStatus = "requested_approved"
	StatusRequestedDownloading MediaStatus = "requested_downloading"
)

var requestStatuses = map[storage.RequestStatus]MediaStatus{
	storage.RequestStatusPending:     StatusRequestedPending,
	storage.RequestStatusApproved:    StatusRequestedApproved,
	storage.RequestStatusDownloading: StatusRequestedDownloading,
}

// requestRank orders active request states by proximity to availability
var requestRank = map[storage.RequestStatus]int{
	storage.RequestStatusPending:     1,
	storage.RequestStatusApproved:    2,
	storage.RequestStatusDownloading: 3,
}

// ResolveStatuses computes one status per id in two storage queries plus,
// for mirrored shows, an on-demand completion check. fast trades the
// completion check for treating mirror presence as complete.
func (m MediaManager) ResolveStatuses(ctx context.Context, tmdbIDs []int32, mediaType storage.MediaType, fast bool) (map[int32]MediaStatus, error) {
	log := logger.FromCtx(ctx)

	mode := "full"
	if fast {
		mode = "fast"
	}
	metrics.StatusLookups.WithLabelValues(mode).Inc()
	metrics.StatusIDsResolved.Add(float64(len(tmdbIDs)))

	statuses := make(map[int32]MediaStatus, len(tmdbIDs))
	if len(tmdbIDs) == 0 {
		return statuses, nil
	}

	items, err := m.storage.ListLibraryItemsByTmdbIDs(ctx, tmdbIDs, mediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to load mirror rows: %w", err)
	}

	requests, err := m.storage.ListRequestsByTmdbIDs(ctx, tmdbIDs, mediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests: %w", err)
	}

	itemsByID := make(map[int32]*model.LibraryItem, len(items))
	for _, item := range items {
		if item.TmdbID != nil {
			itemsByID[*item.TmdbID] = item
		}
	}

	requestsByID := make(map[int32][]*model.Request, len(requests))
	for _, r := range requests {
		requestsByID[r.TmdbID] = append(requestsByID[r.TmdbID], r)
	}

	for _, id := range tmdbIDs {
		item := itemsByID[id]

		mirrored := item != nil
		fullyMirrored := false
		if mirrored {
			complete, err := m.mirrorComplete(ctx, item, mediaType, fast)
			if err != nil {
				log.Warnw("completion check failed, treating show as partial", "tmdbID", id, "error", err)
				complete = false
			}
			fullyMirrored = complete
		}

		switch {
		case activeUnrestricted(requestsByID[id]) != nil:
			if fullyMirrored {
				// the mirror is authoritative over a lagging request
				statuses[id] = StatusInLibrary
				continue
			}
			statuses[id] = requestStatuses[storage.RequestStatus(activeUnrestricted(requestsByID[id]).Status)]
		case anyAvailableRequest(requestsByID[id]):
			statuses[id] = StatusInLibrary
		case fullyMirrored:
			statuses[id] = StatusInLibrary
		case mirrored:
			statuses[id] = StatusPartiallyInLibrary
		default:
			statuses[id] = StatusAvailable
		}
	}

	return statuses, nil
}

// mirrorComplete reports whether a mirrored item counts as fully present:
// movies always, shows per the completion evaluator
func (m MediaManager) mirrorComplete(ctx context.Context, item *model.LibraryItem, mediaType storage.MediaType, fast bool) (bool, error) {
	if mediaType == storage.MediaTypeMovie || fast {
		return true, nil
	}

	if item.TmdbID == nil {
		return false, nil
	}

	completion, err := m.EvaluateShowCompletion(ctx, *item.TmdbID)
	if err != nil {
		return false, err
	}
	return completion.IsComplete, nil
}

// activeUnrestricted returns the most advanced active request that covers
// the whole item rather than a single season
func activeUnrestricted(requests []*model.Request) *model.Request {
	var best *model.Request
	for _, r := range requests {
		status := storage.RequestStatus(r.Status)
		if !status.Active() || r.SeasonNumber != nil {
			continue
		}
		if best == nil || requestRank[status] > requestRank[storage.RequestStatus(best.Status)] {
			best = r
		}
	}
	return best
}

func anyAvailableRequest(requests []*model.Request) bool {
	for _, r := range requests {
		if storage.RequestStatus(r.Status) == storage.RequestStatusAvailable {
			return true
		}
	}
	return false
}
