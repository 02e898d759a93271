package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/plex"
	plexMocks "github.com/kasuboski/mirra/pkg/plex/mocks"
	tmdbMocks "github.com/kasuboski/mirra/pkg/tmdb/mocks"
)

func TestJobRegistry_exclusivity(t *testing.T) {
	registry := NewJobRegistry()

	require.True(t, registry.Begin(JobLibrarySync))
	assert.False(t, registry.Begin(JobLibrarySync))

	registry.End(JobLibrarySync, "run-1", "ok")
	assert.True(t, registry.Begin(JobLibrarySync))
	registry.End(JobLibrarySync, "run-2", "ok")

	jobs := registry.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, JobLibrarySync, jobs[0].Name)
	assert.False(t, jobs[0].Running)
	assert.Equal(t, "run-2", jobs[0].LastRunID)
	assert.Equal(t, "ok", jobs[0].LastResult)
	assert.NotNil(t, jobs[0].LastRun)
}

func TestJobRegistry_jobsSorted(t *testing.T) {
	registry := NewJobRegistry()
	registry.Begin("zeta")
	registry.Begin("alpha")

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "alpha", jobs[0].Name)
	assert.Equal(t, "zeta", jobs[1].Name)
}

func TestScheduler_triggerSync(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	plexMock := plexMocks.NewMockIPlex(ctrl)
	tmdbMock := tmdbMocks.NewMockITmdb(ctrl)
	store := newTestStore(t)

	m := New(plexMock, tmdbMock, store, config.Sync{})
	registry := NewJobRegistry()
	scheduler := NewScheduler(m, registry, 0)

	plexMock.EXPECT().ListSections(gomock.Any()).Return([]plex.Section{}, nil)

	runID, started := scheduler.TriggerSync(ctx)
	require.True(t, started)
	assert.NotEmpty(t, runID)

	require.Eventually(t, func() bool {
		jobs := registry.Jobs()
		return len(jobs) == 1 && !jobs[0].Running && jobs[0].LastRunID == runID
	}, 5*time.Second, 10*time.Millisecond)

	jobs := registry.Jobs()
	assert.Contains(t, jobs[0].LastResult, "processed 0")
}

func TestScheduler_triggerWhileRunning(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	m := New(nil, nil, store, config.Sync{})
	registry := NewJobRegistry()
	scheduler := NewScheduler(m, registry, 0)

	// hold the slot as a running sync would
	require.True(t, registry.Begin(JobLibrarySync))

	runID, started := scheduler.TriggerSync(ctx)
	assert.False(t, started)
	assert.Empty(t, runID)

	registry.End(JobLibrarySync, "run-1", "ok")
}
