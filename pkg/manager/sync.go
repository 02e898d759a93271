package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/sqlite"

	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/metrics"
	"github.com/kasuboski/mirra/pkg/plex"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
)

// SyncResult summarizes one full sync pass
type SyncResult struct {
	Processed int      `json:"processed"`
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Removed   int      `json:"removed"`
	Errors    []string `json:"errors,omitempty"`
}

type identityKey struct {
	tmdbID    int32
	mediaType string
}

// RunFullSync mirrors the media server library into storage: dedup
// pre-pass, per-section upserts, stale-row removal, then the request
// cascade. Idempotent on an unchanged catalog snapshot.
func (m MediaManager) RunFullSync(ctx context.Context) (*SyncResult, error) {
	log := logger.FromCtx(ctx)
	start := time.Now()

	result := new(SyncResult)

	outcome := "success"
	defer func() {
		metrics.SyncDuration.Observe(time.Since(start).Seconds())
		metrics.SyncRuns.WithLabelValues(outcome).Inc()
	}()

	if err := m.dedupMirror(ctx); err != nil {
		outcome = "failure"
		return nil, fmt.Errorf("dedup pre-pass failed: %w", err)
	}

	existing, err := m.storage.ListLibraryItems(ctx)
	if err != nil {
		outcome = "failure"
		return nil, fmt.Errorf("failed to load mirror: %w", err)
	}

	byKey := make(map[string]*model.LibraryItem, len(existing))
	byIdentity := make(map[identityKey]*model.LibraryItem)
	for _, item := range existing {
		byKey[item.ExternalKey] = item
		if item.TmdbID != nil {
			byIdentity[identityKey{*item.TmdbID, item.MediaType}] = item
		}
	}

	sections, err := m.plex.ListSections(ctx)
	if err != nil {
		// connectivity failures abort the pass outright; the library is
		// not gone just because the server is
		outcome = "failure"
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	seen := make(map[string]struct{})
	syncedAt := time.Now().UTC()
	sectionFailed := false

	for _, section := range m.filterSections(sections) {
		if err := ctx.Err(); err != nil {
			outcome = "failure"
			return result, err
		}

		entries, err := m.plex.ListSectionEntries(ctx, section.Key)
		if err != nil {
			log.Errorw("failed to list section entries", "section", section.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("section %q: %v", section.Title, err))
			sectionFailed = true
			continue
		}

		// every catalog entry is marked seen before anything can fail so
		// a skipped entry is never mistaken for a removal
		for _, entry := range entries {
			seen[entry.ExternalKey] = struct{}{}
		}

		err = m.storage.Transaction(ctx, func(store storage.Storage) error {
			for _, entry := range entries {
				if err := m.syncEntry(ctx, store, entry, byKey, byIdentity, seen, syncedAt, result); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Errorw("section sync rolled back", "section", section.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("section %q: %v", section.Title, err))
			sectionFailed = true
		}
	}

	if sectionFailed {
		// unsynced sections never marked their entries seen; removing now
		// would drop live rows
		log.Warnw("skipping removal pass", "reason", "section failures")
	} else if err := m.removeStale(ctx, existing, seen, result); err != nil {
		outcome = "failure"
		return result, fmt.Errorf("removal pass failed: %w", err)
	}

	if err := m.cascadeRequests(ctx); err != nil {
		log.Errorw("request cascade failed", "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("request cascade: %v", err))
	}

	if len(result.Errors) > 0 {
		outcome = "partial"
	}

	log.Infow("library sync finished",
		"processed", result.Processed,
		"added", result.Added,
		"updated", result.Updated,
		"removed", result.Removed,
		"errors", len(result.Errors),
		"elapsed", time.Since(start))

	return result, nil
}

// filterSections keeps sections whose type is syncable and, when the
// configured library list is non-empty, whose title is listed
func (m MediaManager) filterSections(sections []plex.Section) []plex.Section {
	wanted := make(map[string]struct{}, len(m.config.Libraries))
	for _, title := range m.config.Libraries {
		wanted[title] = struct{}{}
	}

	filtered := make([]plex.Section, 0, len(sections))
	for _, s := range sections {
		if _, ok := storage.ParseMediaType(s.Type); !ok {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[s.Title]; !ok {
				continue
			}
		}
		filtered = append(filtered, s)
	}

	return filtered
}

func (m MediaManager) syncEntry(ctx context.Context, store storage.Storage, entry plex.Entry, byKey map[string]*model.LibraryItem, byIdentity map[identityKey]*model.LibraryItem, seen map[string]struct{}, syncedAt time.Time, result *SyncResult) error {
	log := logger.FromCtx(ctx)

	result.Processed++
	metrics.SyncItemsProcessed.Inc()

	mediaType, ok := storage.ParseMediaType(entry.MediaType)
	if !ok {
		log.Debugw("skipping entry of unknown type", "title", entry.Title, "type", entry.MediaType)
		return nil
	}

	id, fuzzy, err := m.MatchEntry(ctx, entry)
	switch {
	case errors.Is(err, ErrNoMatch):
		// unresolved entries never enter the mirror; they are counted in
		// the error list and retried on the next pass
		metrics.SyncMatchMisses.Inc()
		log.Warnw("no canonical match, skipping entry", "title", entry.Title, "year", entry.Year)
		result.Errors = append(result.Errors, fmt.Sprintf("no match for %q (%d)", entry.Title, entry.Year))
		return nil
	case err != nil:
		metrics.SyncMatchMisses.Inc()
		log.Warnw("identity match failed, skipping entry", "title", entry.Title, "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("match %q: %v", entry.Title, err))
		return nil
	}
	if fuzzy {
		log.Infow("matched via fuzzy title", "title", entry.Title, "tmdbID", id)
	}

	item := model.LibraryItem{
		ExternalKey: entry.ExternalKey,
		TmdbID:      &id,
		Title:       entry.Title,
		MediaType:   string(mediaType),
		Year:        nilIfZero(entry.Year),
		AddedAt:     entry.AddedAt,
		SyncedAt:    syncedAt,
	}

	switch {
	case byKey[entry.ExternalKey] != nil:
		current := byKey[entry.ExternalKey]
		item.ID = current.ID
		if err := store.UpdateLibraryItem(ctx, item); err != nil {
			return fmt.Errorf("failed to update %q: %w", entry.Title, err)
		}
		// synced_at refreshes every pass; an unchanged snapshot must not
		// count as an update
		if materialChange(current, item) {
			result.Updated++
		}
	case byIdentity[identityKey{id, string(mediaType)}] != nil:
		// same canonical item under a new catalog key; a re-scan churned
		// the external key
		current := byIdentity[identityKey{id, string(mediaType)}]
		seen[current.ExternalKey] = struct{}{}
		item.ID = current.ID
		if err := store.UpdateLibraryItem(ctx, item); err != nil {
			return fmt.Errorf("failed to rewrite key for %q: %w", entry.Title, err)
		}
		result.Updated++
	default:
		createdID, err := store.CreateLibraryItem(ctx, item)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", entry.Title, err)
		}
		item.ID = int32(createdID)
		result.Added++
	}

	// duplicate entries within one snapshot resolve against the row just
	// written instead of inserting again
	byKey[item.ExternalKey] = &item
	byIdentity[identityKey{id, item.MediaType}] = &item

	if mediaType == storage.MediaTypeTV {
		if err := m.syncShowEpisodes(ctx, store, entry, id, result); err != nil {
			// episode rebuild failure leaves last sync's rows in place
			log.Warnw("episode rebuild failed", "title", entry.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("episodes for %q: %v", entry.Title, err))
		}
	}

	return nil
}

func (m MediaManager) syncShowEpisodes(ctx context.Context, store storage.Storage, entry plex.Entry, tmdbID int32, result *SyncResult) error {
	leaves, err := m.plex.ListShowLeaves(ctx, entry.ExternalKey)
	if err != nil {
		return err
	}

	episodes := make([]model.EpisodeItem, 0, len(leaves))
	for _, leaf := range leaves {
		// specials live in season zero and never count toward completion
		if leaf.SeasonNumber <= 0 {
			continue
		}
		episodes = append(episodes, model.EpisodeItem{
			TmdbID:        tmdbID,
			SeasonNumber:  leaf.SeasonNumber,
			EpisodeNumber: nilIfZero(leaf.EpisodeNumber),
			Title:         nilIfEmpty(leaf.Title),
			ExternalKey:   leaf.ExternalKey,
			AddedAt:       leaf.AddedAt,
		})
	}

	return store.ReplaceShowEpisodes(ctx, tmdbID, episodes)
}

// dedupMirror collapses mirror rows sharing (tmdb_id, media_type) down to
// the most recently synced row
func (m MediaManager) dedupMirror(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	items, err := m.storage.ListLibraryItems(ctx)
	if err != nil {
		return err
	}

	keep := make(map[identityKey]*model.LibraryItem)
	var extra []*model.LibraryItem
	for _, item := range items {
		if item.TmdbID == nil {
			continue
		}
		key := identityKey{*item.TmdbID, item.MediaType}
		current, ok := keep[key]
		if !ok {
			keep[key] = item
			continue
		}
		if item.SyncedAt.After(current.SyncedAt) {
			extra = append(extra, current)
			keep[key] = item
		} else {
			extra = append(extra, item)
		}
	}

	if len(extra) == 0 {
		return nil
	}

	return m.storage.Transaction(ctx, func(store storage.Storage) error {
		for _, item := range extra {
			log.Warnw("removing duplicate mirror row", "title", item.Title, "tmdbID", *item.TmdbID, "externalKey", item.ExternalKey)
			if err := store.DeleteLibraryItem(ctx, int64(item.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// removeStale drops mirror rows the catalog no longer lists
func (m MediaManager) removeStale(ctx context.Context, existing []*model.LibraryItem, seen map[string]struct{}, result *SyncResult) error {
	log := logger.FromCtx(ctx)

	var stale []*model.LibraryItem
	for _, item := range existing {
		if _, ok := seen[item.ExternalKey]; !ok {
			stale = append(stale, item)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	return m.storage.Transaction(ctx, func(store storage.Storage) error {
		for _, item := range stale {
			log.Infow("removing item no longer in catalog", "title", item.Title, "externalKey", item.ExternalKey)
			if err := store.DeleteLibraryItem(ctx, int64(item.ID)); err != nil {
				return err
			}
			if item.MediaType == string(storage.MediaTypeTV) && item.TmdbID != nil {
				if err := store.DeleteShowEpisodes(ctx, *item.TmdbID); err != nil {
					return err
				}
			}
			result.Removed++
			metrics.SyncItemsRemoved.Inc()
		}
		return nil
	})
}

// cascadeRequests flips pending/approved requests to available once their
// item is mirrored. Downloading requests belong to the request owner.
func (m MediaManager) cascadeRequests(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	requests, err := m.storage.ListRequests(ctx, table.Request.Status.IN(
		sqlite.String(string(storage.RequestStatusPending)),
		sqlite.String(string(storage.RequestStatusApproved)),
	))
	if err != nil {
		return err
	}

	for _, request := range requests {
		item, err := m.storage.GetLibraryItem(ctx, table.LibraryItem.TmdbID.EQ(sqlite.Int32(request.TmdbID)).
			AND(table.LibraryItem.MediaType.EQ(sqlite.String(request.MediaType))))
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		log.Infow("request fulfilled by library", "tmdbID", request.TmdbID, "mediaType", request.MediaType, "title", item.Title)
		if err := m.storage.UpdateRequestStatus(ctx, int64(request.ID), storage.RequestStatusAvailable); err != nil {
			return err
		}
	}

	return nil
}

// materialChange reports whether an incoming entry differs from its
// mirrored row in anything beyond synced_at
func materialChange(current *model.LibraryItem, next model.LibraryItem) bool {
	return current.ExternalKey != next.ExternalKey ||
		current.Title != next.Title ||
		current.MediaType != next.MediaType ||
		!int32PtrEqual(current.TmdbID, next.TmdbID) ||
		!int32PtrEqual(current.Year, next.Year) ||
		!timePtrEqual(current.AddedAt, next.AddedAt)
}

func int32PtrEqual(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func nilIfZero(v int32) *int32 {
	if v == 0 {
		return nil
	}
	return &v
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
