package manager

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/plex"
	"github.com/kasuboski/mirra/pkg/tmdb"
	tmdbMocks "github.com/kasuboski/mirra/pkg/tmdb/mocks"
)

func TestMatchEntry_guidHints(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{})

	t.Run("tmdb guid", func(t *testing.T) {
		id, fuzzy, err := m.MatchEntry(ctx, plex.Entry{
			Title:     "The Matrix",
			MediaType: "movie",
			GUIDs:     []string{"imdb://tt0133093", "tmdb://603"},
		})
		require.NoError(t, err)
		assert.False(t, fuzzy)
		assert.Equal(t, int32(603), id)
	})

	t.Run("legacy agent guid", func(t *testing.T) {
		id, fuzzy, err := m.MatchEntry(ctx, plex.Entry{
			Title:     "The Matrix",
			MediaType: "movie",
			GUIDs:     []string{"com.plexapp.agents.themoviedb://603?lang=en"},
		})
		require.NoError(t, err)
		assert.False(t, fuzzy)
		assert.Equal(t, int32(603), id)
	})

	t.Run("malformed guid falls through", func(t *testing.T) {
		tmdbMock.EXPECT().SearchMovie(ctx, "The Matrix").Return([]tmdb.SearchResult{
			{ID: 603, Title: "The Matrix", Year: 1999, MediaType: "movie"},
		}, nil)

		id, _, err := m.MatchEntry(ctx, plex.Entry{
			Title:     "The Matrix",
			Year:      1999,
			MediaType: "movie",
			GUIDs:     []string{"tmdb://notanumber"},
		})
		require.NoError(t, err)
		assert.Equal(t, int32(603), id)
	})
}

func TestMatchEntry_exactTitleAndYear(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{})

	tmdbMock.EXPECT().SearchMovie(ctx, "Heat").Return([]tmdb.SearchResult{
		{ID: 10, Title: "Heat", Year: 1972, MediaType: "movie"},
		{ID: 949, Title: "Heat", Year: 1995, MediaType: "movie"},
	}, nil)

	id, fuzzy, err := m.MatchEntry(ctx, plex.Entry{
		Title:     "Heat",
		Year:      1995,
		MediaType: "movie",
	})
	require.NoError(t, err)
	assert.False(t, fuzzy)
	assert.Equal(t, int32(949), id)
}

func TestMatchEntry_fuzzyFallback(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{FuzzyMaxDistance: 2})

	// the catalog spells it differently than the provider
	tmdbMock.EXPECT().SearchMovie(ctx, "Seven").Return([]tmdb.SearchResult{
		{ID: 807, Title: "Se7en", Year: 1995, MediaType: "movie"},
	}, nil)

	id, fuzzy, err := m.MatchEntry(ctx, plex.Entry{
		Title:     "Seven",
		Year:      1995,
		MediaType: "movie",
	})
	require.NoError(t, err)
	assert.True(t, fuzzy)
	assert.Equal(t, int32(807), id)
}

func TestMatchEntry_fuzzyRespectsDistanceBound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{FuzzyMaxDistance: 2})

	tmdbMock.EXPECT().SearchMovie(ctx, "Alien").Return([]tmdb.SearchResult{
		{ID: 8078, Title: "Aliens vs Predator", Year: 2004, MediaType: "movie"},
	}, nil)

	_, _, err := m.MatchEntry(ctx, plex.Entry{
		Title:     "Alien",
		Year:      1979,
		MediaType: "movie",
	})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMatchEntry_tvSearch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{})

	tmdbMock.EXPECT().SearchTv(ctx, "Game of Thrones").Return([]tmdb.SearchResult{
		{ID: 1399, Title: "Game of Thrones", Year: 2011, MediaType: "tv"},
	}, nil)

	id, fuzzy, err := m.MatchEntry(ctx, plex.Entry{
		Title:     "Game of Thrones",
		Year:      2011,
		MediaType: "show",
	})
	require.NoError(t, err)
	assert.False(t, fuzzy)
	assert.Equal(t, int32(1399), id)
}

func TestMatchEntry_searchErrorPropagates(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	m := New(nil, tmdbMock, nil, config.Sync{})

	tmdbMock.EXPECT().SearchMovie(ctx, "Heat").Return(nil, fmt.Errorf("boom"))

	_, _, err := m.MatchEntry(ctx, plex.Entry{
		Title:     "Heat",
		Year:      1995,
		MediaType: "movie",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "the matrix", normalizeTitle("  The   MATRIX "))
	assert.Equal(t, normalizeTitle("Se7en"), normalizeTitle("se7en"))
}
