package sqlite

import (
	"context"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
)

// ReplaceShowEpisodes swaps out all episode rows for a show in one
// transaction. The mirror never diffs episodes; a show's rows are rebuilt
// wholesale on every sync.
func (s *SQLite) ReplaceShowEpisodes(ctx context.Context, tmdbID int32, episodes []model.EpisodeItem) error {
	return s.Transaction(ctx, func(store storage.Storage) error {
		txs := store.(*SQLite)

		delStmt := table.EpisodeItem.DELETE().
			WHERE(table.EpisodeItem.TmdbID.EQ(sqlite.Int32(tmdbID)))
		if _, err := delStmt.ExecContext(ctx, txs.executor()); err != nil {
			return err
		}

		for _, e := range episodes {
			e.TmdbID = tmdbID

			insertColumns := table.EpisodeItem.MutableColumns
			if e.AddedAt == nil {
				insertColumns = insertColumns.Except(table.EpisodeItem.AddedAt)
			}

			stmt := table.EpisodeItem.INSERT(insertColumns).MODEL(e)
			if _, err := stmt.ExecContext(ctx, txs.executor()); err != nil {
				return err
			}
		}

		return nil
	})
}

// ListShowEpisodes lists the mirrored episode rows for a show ordered by
// season and episode
func (s *SQLite) ListShowEpisodes(ctx context.Context, tmdbID int32) ([]*model.EpisodeItem, error) {
	stmt := table.EpisodeItem.
		SELECT(table.EpisodeItem.AllColumns).
		FROM(table.EpisodeItem).
		WHERE(table.EpisodeItem.TmdbID.EQ(sqlite.Int32(tmdbID))).
		ORDER_BY(table.EpisodeItem.SeasonNumber.ASC(), table.EpisodeItem.EpisodeNumber.ASC())

	episodes := make([]*model.EpisodeItem, 0)
	err := stmt.QueryContext(ctx, s.executor(), &episodes)
	return episodes, err
}

// DeleteShowEpisodes removes all episode rows for a show
func (s *SQLite) DeleteShowEpisodes(ctx context.Context, tmdbID int32) error {
	stmt := table.EpisodeItem.DELETE().
		WHERE(table.EpisodeItem.TmdbID.EQ(sqlite.Int32(tmdbID)))
	_, err := s.handleDelete(ctx, stmt)
	return err
}
