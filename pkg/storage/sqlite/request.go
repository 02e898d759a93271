package sqlite

import (
	"context"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
)

// CreateRequest stores a new media request
func (s *SQLite) CreateRequest(ctx context.Context, request model.Request) (int64, error) {
	if request.Status == "" {
		request.Status = string(storage.RequestStatusPending)
	}

	insertColumns := table.Request.MutableColumns
	if request.CreatedAt == nil {
		insertColumns = insertColumns.Except(table.Request.CreatedAt)
	}
	if request.UpdatedAt == nil {
		insertColumns = insertColumns.Except(table.Request.UpdatedAt)
	}

	stmt := table.Request.INSERT(insertColumns).MODEL(request)
	result, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// ListRequests lists requests, optionally filtered
func (s *SQLite) ListRequests(ctx context.Context, where ...sqlite.BoolExpression) ([]*model.Request, error) {
	stmt := table.Request.
		SELECT(table.Request.AllColumns).
		FROM(table.Request).
		ORDER_BY(table.Request.ID.ASC())

	for _, w := range where {
		stmt = stmt.WHERE(w)
	}

	requests := make([]*model.Request, 0)
	err := stmt.QueryContext(ctx, s.executor(), &requests)
	return requests, err
}

// ListRequestsByTmdbIDs fetches the requests for a batch of canonical ids in
// a single query
func (s *SQLite) ListRequestsByTmdbIDs(ctx context.Context, tmdbIDs []int32, mediaType storage.MediaType) ([]*model.Request, error) {
	requests := make([]*model.Request, 0)
	if len(tmdbIDs) == 0 {
		return requests, nil
	}

	ids := make([]sqlite.Expression, len(tmdbIDs))
	for i, id := range tmdbIDs {
		ids[i] = sqlite.Int32(id)
	}

	stmt := table.Request.
		SELECT(table.Request.AllColumns).
		FROM(table.Request).
		WHERE(
			table.Request.TmdbID.IN(ids...).
				AND(table.Request.MediaType.EQ(sqlite.String(string(mediaType)))))

	err := stmt.QueryContext(ctx, s.executor(), &requests)
	return requests, err
}

// UpdateRequestStatus transitions a request to the given status
func (s *SQLite) UpdateRequestStatus(ctx context.Context, id int64, status storage.RequestStatus) error {
	stmt := table.Request.UPDATE().
		SET(
			table.Request.Status.SET(sqlite.String(string(status))),
			table.Request.UpdatedAt.SET(sqlite.TimestampExp(sqlite.String(time.Now().UTC().Format(timestampFormat))))).
		WHERE(table.Request.ID.EQ(sqlite.Int64(id)))

	_, err := s.handleStatement(ctx, stmt)
	return err
}

// DeleteRequest removes a request by id
func (s *SQLite) DeleteRequest(ctx context.Context, id int64) error {
	stmt := table.Request.DELETE().WHERE(table.Request.ID.EQ(sqlite.Int64(id)))
	_, err := s.handleDelete(ctx, stmt)
	return err
}
