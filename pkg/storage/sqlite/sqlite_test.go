package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initSqlite(t *testing.T) storage.Storage {
	store, err := New(":memory:")
	require.NoError(t, err)
	return store
}

func TestInit(t *testing.T) {
	store := initSqlite(t)
	assert.NotNil(t, store)
}

func TestTransaction_commit(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	err := store.Transaction(ctx, func(tx storage.Storage) error {
		_, err := tx.CreateLibraryItem(ctx, model.LibraryItem{
			ExternalKey: "1",
			Title:       "Heat",
			MediaType:   "movie",
			SyncedAt:    time.Now().UTC(),
		})
		return err
	})
	require.NoError(t, err)

	items, err := store.ListLibraryItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTransaction_rollback(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	err := store.Transaction(ctx, func(tx storage.Storage) error {
		_, err := tx.CreateLibraryItem(ctx, model.LibraryItem{
			ExternalKey: "1",
			Title:       "Heat",
			MediaType:   "movie",
			SyncedAt:    time.Now().UTC(),
		})
		require.NoError(t, err)
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	items, err := store.ListLibraryItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTransaction_nestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	err := store.Transaction(ctx, func(tx storage.Storage) error {
		return tx.Transaction(ctx, func(inner storage.Storage) error {
			_, err := inner.CreateLibraryItem(ctx, model.LibraryItem{
				ExternalKey: "1",
				Title:       "Heat",
				MediaType:   "movie",
				SyncedAt:    time.Now().UTC(),
			})
			return err
		})
	})
	require.NoError(t, err)

	_, err = store.GetLibraryItem(ctx, table.LibraryItem.ExternalKey.EQ(sqlite.String("1")))
	require.NoError(t, err)
}
