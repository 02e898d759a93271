package sqlite

import (
	"context"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
)

// GetLibraryStats returns aggregate mirror counts in two queries
func (s *SQLite) GetLibraryStats(ctx context.Context) (*storage.LibraryStats, error) {
	// raw SQL since Jet doesn't properly handle aggregate queries with custom structs
	rows, err := s.executor().QueryContext(ctx, `
		SELECT media_type, COUNT(id) AS count
		FROM library_item
		GROUP BY media_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &storage.LibraryStats{}
	for rows.Next() {
		var mediaType string
		var count int
		if err := rows.Scan(&mediaType, &count); err != nil {
			return nil, err
		}

		switch storage.MediaType(mediaType) {
		case storage.MediaTypeMovie:
			stats.Movies = count
		case storage.MediaTypeTV:
			stats.Shows = count
		}
		stats.TotalItems += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stmt := table.LibraryItem.
		SELECT(table.LibraryItem.SyncedAt).
		FROM(table.LibraryItem).
		ORDER_BY(table.LibraryItem.SyncedAt.DESC()).
		LIMIT(1)

	var latest model.LibraryItem
	err = stmt.QueryContext(ctx, s.executor(), &latest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return stats, nil
		}
		return nil, err
	}

	syncedAt := latest.SyncedAt
	stats.LastSyncedAt = &syncedAt
	return stats, nil
}
