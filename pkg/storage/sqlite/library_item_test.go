package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/storage"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func TestLibraryItemStorage(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	items, err := store.ListLibraryItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	syncedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	addedAt := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)
	create := model.LibraryItem{
		ExternalKey: "49915",
		TmdbID:      int32Ptr(603),
		Title:       "The Matrix",
		MediaType:   "movie",
		Year:        int32Ptr(1999),
		AddedAt:     &addedAt,
		SyncedAt:    syncedAt,
	}

	id, err := store.CreateLibraryItem(ctx, create)
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := store.GetLibraryItem(ctx, table.LibraryItem.ExternalKey.EQ(sqlite.String("49915")))
	require.NoError(t, err)
	assert.Equal(t, int32(id), got.ID)
	assert.Equal(t, "The Matrix", got.Title)
	assert.Equal(t, "movie", got.MediaType)
	require.NotNil(t, got.TmdbID)
	assert.Equal(t, int32(603), *got.TmdbID)
	require.NotNil(t, got.Year)
	assert.Equal(t, int32(1999), *got.Year)
	require.NotNil(t, got.AddedAt)
	assert.True(t, got.AddedAt.Equal(addedAt))
	assert.True(t, got.SyncedAt.Equal(syncedAt))

	got.Title = "The Matrix Reloaded"
	got.TmdbID = int32Ptr(604)
	err = store.UpdateLibraryItem(ctx, *got)
	require.NoError(t, err)

	updated, err := store.GetLibraryItem(ctx, table.LibraryItem.ID.EQ(sqlite.Int32(got.ID)))
	require.NoError(t, err)
	assert.Equal(t, "The Matrix Reloaded", updated.Title)
	assert.Equal(t, int32(604), *updated.TmdbID)

	err = store.DeleteLibraryItem(ctx, id)
	require.NoError(t, err)

	_, err = store.GetLibraryItem(ctx, table.LibraryItem.ID.EQ(sqlite.Int32(got.ID)))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateLibraryItem_duplicateExternalKey(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	item := model.LibraryItem{
		ExternalKey: "100",
		Title:       "Alien",
		MediaType:   "movie",
		SyncedAt:    time.Now().UTC(),
	}

	_, err := store.CreateLibraryItem(ctx, item)
	require.NoError(t, err)

	_, err = store.CreateLibraryItem(ctx, item)
	assert.Error(t, err)
}

func TestCreateLibraryItem_nullableFields(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	// an unmatched entry has no canonical id, year, or source timestamp
	id, err := store.CreateLibraryItem(ctx, model.LibraryItem{
		ExternalKey: "200",
		Title:       "Homemade Movie",
		MediaType:   "movie",
		SyncedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	got, err := store.GetLibraryItem(ctx, table.LibraryItem.ID.EQ(sqlite.Int(id)))
	require.NoError(t, err)
	assert.Nil(t, got.TmdbID)
	assert.Nil(t, got.Year)
	assert.Nil(t, got.AddedAt)
}

func TestListLibraryItemsByTmdbIDs(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	now := time.Now().UTC()
	seed := []model.LibraryItem{
		{ExternalKey: "1", TmdbID: int32Ptr(603), Title: "The Matrix", MediaType: "movie", SyncedAt: now},
		{ExternalKey: "2", TmdbID: int32Ptr(604), Title: "The Matrix Reloaded", MediaType: "movie", SyncedAt: now},
		{ExternalKey: "3", TmdbID: int32Ptr(1399), Title: "Game of Thrones", MediaType: "tv", SyncedAt: now},
		{ExternalKey: "4", Title: "Unmatched", MediaType: "movie", SyncedAt: now},
	}
	for _, item := range seed {
		_, err := store.CreateLibraryItem(ctx, item)
		require.NoError(t, err)
	}

	t.Run("filters by media type", func(t *testing.T) {
		items, err := store.ListLibraryItemsByTmdbIDs(ctx, []int32{603, 604, 1399}, storage.MediaTypeMovie)
		require.NoError(t, err)
		require.Len(t, items, 2)
	})

	t.Run("empty input short-circuits", func(t *testing.T) {
		items, err := store.ListLibraryItemsByTmdbIDs(ctx, nil, storage.MediaTypeMovie)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("unknown ids return nothing", func(t *testing.T) {
		items, err := store.ListLibraryItemsByTmdbIDs(ctx, []int32{999999}, storage.MediaTypeMovie)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
