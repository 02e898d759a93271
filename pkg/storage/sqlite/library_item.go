package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
)

// CreateLibraryItem stores a new mirror row for a catalog entry
func (s *SQLite) CreateLibraryItem(ctx context.Context, item model.LibraryItem) (int64, error) {
	insertColumns := table.LibraryItem.MutableColumns
	if item.AddedAt == nil {
		insertColumns = insertColumns.Except(table.LibraryItem.AddedAt)
	}

	stmt := table.LibraryItem.
		INSERT(insertColumns).
		MODEL(item)

	result, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// UpdateLibraryItem overwrites the mutable columns of a mirror row by id
func (s *SQLite) UpdateLibraryItem(ctx context.Context, item model.LibraryItem) error {
	stmt := table.LibraryItem.
		UPDATE(table.LibraryItem.MutableColumns).
		MODEL(item).
		WHERE(table.LibraryItem.ID.EQ(sqlite.Int32(item.ID)))

	_, err := s.handleStatement(ctx, stmt)
	return err
}

// DeleteLibraryItem removes a mirror row by id
func (s *SQLite) DeleteLibraryItem(ctx context.Context, id int64) error {
	stmt := table.LibraryItem.DELETE().WHERE(table.LibraryItem.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleDelete(ctx, stmt)
	return err
}

// GetLibraryItem fetches a single mirror row matching the given expression
func (s *SQLite) GetLibraryItem(ctx context.Context, where sqlite.BoolExpression) (*model.LibraryItem, error) {
	stmt := table.LibraryItem.
		SELECT(table.LibraryItem.AllColumns).
		FROM(table.LibraryItem).
		WHERE(where)

	item := new(model.LibraryItem)
	err := stmt.QueryContext(ctx, s.executor(), item)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lookup library item: %w", err)
	}

	return item, nil
}

// ListLibraryItems lists mirror rows, optionally filtered
func (s *SQLite) ListLibraryItems(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.LibraryItem, error) {
	stmt := table.LibraryItem.
		SELECT(table.LibraryItem.AllColumns).
		FROM(table.LibraryItem).
		ORDER_BY(table.LibraryItem.Title.ASC())

	for _, w := range where {
		stmt = stmt.WHERE(w)
	}

	items := make([]*model.LibraryItem, 0)
	err := stmt.QueryContext(ctx, s.executor(), &items)
	return items, err
}

// ListLibraryItemsByTmdbIDs fetches the mirror rows for a batch of canonical ids
// in a single query
func (s *SQLite) ListLibraryItemsByTmdbIDs(ctx context.Context, tmdbIDs []int32, mediaType storage.MediaType) ([]*model.LibraryItem, error) {
	items := make([]*model.LibraryItem, 0)
	if len(tmdbIDs) == 0 {
		return items, nil
	}

	ids := make([]sqlite.Expression, len(tmdbIDs))
	for i, id := range tmdbIDs {
		ids[i] = sqlite.Int32(id)
	}

	stmt := table.LibraryItem.
		SELECT(table.LibraryItem.AllColumns).
		FROM(table.LibraryItem).
		WHERE(
			table.LibraryItem.TmdbID.IN(ids...).
				AND(table.LibraryItem.MediaType.EQ(sqlite.String(string(mediaType)))))

	err := stmt.QueryContext(ctx, s.executor(), &items)
	return items, err
}
