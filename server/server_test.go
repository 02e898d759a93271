package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/manager"
	"github.com/kasuboski/mirra/pkg/plex"
	plexMocks "github.com/kasuboski/mirra/pkg/plex/mocks"
	"github.com/kasuboski/mirra/pkg/storage"
	mirraSqlite "github.com/kasuboski/mirra/pkg/storage/sqlite"
	"github.com/kasuboski/mirra/pkg/storage/sqlite/schema/gen/model"
	tmdbMocks "github.com/kasuboski/mirra/pkg/tmdb/mocks"
)

type testServer struct {
	server   Server
	store    storage.Storage
	plexMock *plexMocks.MockIPlex
	tmdbMock *tmdbMocks.MockITmdb
	registry *manager.JobRegistry
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	plexMock := plexMocks.NewMockIPlex(ctrl)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)

	store, err := mirraSqlite.New(":memory:")
	require.NoError(t, err)

	m := manager.New(plexMock, tmdbMock, store, config.Sync{})
	registry := manager.NewJobRegistry()
	scheduler := manager.NewScheduler(m, registry, 0)

	return testServer{
		server:   New(zap.NewNop().Sugar(), m, scheduler, registry),
		store:    store,
		plexMock: plexMock,
		tmdbMock: tmdbMock,
		registry: registry,
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) GenericResponse {
	t.Helper()
	var body GenericResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ts.server.Healthz()(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, "ok", body.Response)
}

func TestGetStatuses(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	tmdbID := int32(603)
	_, err := ts.store.CreateLibraryItem(ctx, model.LibraryItem{
		ExternalKey: "m1", TmdbID: &tmdbID, Title: "The Matrix", MediaType: "movie", SyncedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/statuses?ids=603,999&mediaType=movie", nil)
		ts.server.GetStatuses()(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeResponse(t, w)
		statuses, ok := body.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "in_library", statuses["603"])
		assert.Equal(t, "available", statuses["999"])
	})

	t.Run("missing ids", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/statuses?mediaType=movie", nil)
		ts.server.GetStatuses()(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad media type", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/statuses?ids=603&mediaType=music", nil)
		ts.server.GetStatuses()(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/statuses?ids=abc&mediaType=movie", nil)
		ts.server.GetStatuses()(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetStats(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.store.CreateLibraryItem(ctx, model.LibraryItem{
		ExternalKey: "m1", Title: "The Matrix", MediaType: "movie", SyncedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	ts.server.GetStats()(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	stats, ok := body.Response.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stats["totalItems"])
	assert.Equal(t, float64(1), stats["movies"])
}

func TestTriggerSync(t *testing.T) {
	t.Run("starts a run", func(t *testing.T) {
		ts := newTestServer(t)
		ts.plexMock.EXPECT().ListSections(gomock.Any()).Return([]plex.Section{}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
		ts.server.TriggerSync()(w, r)

		require.Equal(t, http.StatusAccepted, w.Code)
		body := decodeResponse(t, w)
		payload, ok := body.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, payload["started"])
		assert.NotEmpty(t, payload["runId"])

		require.Eventually(t, func() bool {
			jobs := ts.registry.Jobs()
			return len(jobs) == 1 && !jobs[0].Running
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("reports an in-flight run", func(t *testing.T) {
		ts := newTestServer(t)
		require.True(t, ts.registry.Begin(manager.JobLibrarySync))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
		ts.server.TriggerSync()(w, r)

		require.Equal(t, http.StatusAccepted, w.Code)
		body := decodeResponse(t, w)
		payload, ok := body.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, payload["started"])
	})
}

func TestListJobs(t *testing.T) {
	ts := newTestServer(t)
	ts.registry.Begin(manager.JobLibrarySync)
	ts.registry.End(manager.JobLibrarySync, "run-1", "ok")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	ts.server.ListJobs()(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	jobs, ok := body.Response.([]any)
	require.True(t, ok)
	require.Len(t, jobs, 1)
}
