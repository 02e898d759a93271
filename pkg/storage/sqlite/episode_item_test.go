package sqlite

import (
	"context"
	"testing"

	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestReplaceShowEpisodes(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	episodes, err := store.ListShowEpisodes(ctx, 1399)
	require.NoError(t, err)
	assert.Empty(t, episodes)

	first := []model.EpisodeItem{
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(1), Title: strPtr("Winter Is Coming"), ExternalKey: "e1"},
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(2), Title: strPtr("The Kingsroad"), ExternalKey: "e2"},
		{SeasonNumber: 2, EpisodeNumber: int32Ptr(1), Title: strPtr("The North Remembers"), ExternalKey: "e3"},
	}
	err = store.ReplaceShowEpisodes(ctx, 1399, first)
	require.NoError(t, err)

	episodes, err = store.ListShowEpisodes(ctx, 1399)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, int32(1), episodes[0].SeasonNumber)
	assert.Equal(t, int32(2), episodes[2].SeasonNumber)

	// a rebuild replaces wholesale rather than diffing
	second := []model.EpisodeItem{
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(1), Title: strPtr("Winter Is Coming"), ExternalKey: "e1"},
	}
	err = store.ReplaceShowEpisodes(ctx, 1399, second)
	require.NoError(t, err)

	episodes, err = store.ListShowEpisodes(ctx, 1399)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "e1", episodes[0].ExternalKey)
	assert.Equal(t, int32(1399), episodes[0].TmdbID)
}

func TestReplaceShowEpisodes_scopedToShow(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	err := store.ReplaceShowEpisodes(ctx, 1399, []model.EpisodeItem{
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(1), ExternalKey: "a1"},
	})
	require.NoError(t, err)

	err = store.ReplaceShowEpisodes(ctx, 456, []model.EpisodeItem{
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(1), ExternalKey: "b1"},
	})
	require.NoError(t, err)

	err = store.ReplaceShowEpisodes(ctx, 1399, nil)
	require.NoError(t, err)

	episodes, err := store.ListShowEpisodes(ctx, 456)
	require.NoError(t, err)
	assert.Len(t, episodes, 1)
}

func TestDeleteShowEpisodes(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t)

	err := store.ReplaceShowEpisodes(ctx, 1399, []model.EpisodeItem{
		{SeasonNumber: 1, EpisodeNumber: int32Ptr(1), ExternalKey: "a1"},
		{SeasonNumber: 1, ExternalKey: "marker"},
	})
	require.NoError(t, err)

	err = store.DeleteShowEpisodes(ctx, 1399)
	require.NoError(t, err)

	episodes, err := store.ListShowEpisodes(ctx, 1399)
	require.NoError(t, err)
	assert.Empty(t, episodes)
}
