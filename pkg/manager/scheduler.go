package manager

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kasuboski/mirra/pkg/cache"
	"github.com/kasuboski/mirra/pkg/logger"
)

const JobLibrarySync = "library-sync"

// JobStatus is the tracked state of one background job
type JobStatus struct {
	Name       string     `json:"name"`
	Running    bool       `json:"running"`
	LastRun    *time.Time `json:"lastRun,omitempty"`
	NextRun    *time.Time `json:"nextRun,omitempty"`
	LastRunID  string     `json:"lastRunId,omitempty"`
	LastResult string     `json:"lastResult,omitempty"`
}

// JobRegistry tracks background jobs for the lifetime of the process. It
// is created at startup, shared by reference, and guarantees at most one
// concurrent run per job name.
type JobRegistry struct {
	mu   sync.Mutex
	jobs map[string]*JobStatus
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{
		jobs: make(map[string]*JobStatus),
	}
}

// Begin marks a job running. It returns false when the job is already
// running; the caller must not start another run.
func (r *JobRegistry) Begin(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		job = &JobStatus{Name: name}
		r.jobs[name] = job
	}
	if job.Running {
		return false
	}

	job.Running = true
	return true
}

// End records the outcome of a run started with Begin
func (r *JobRegistry) End(name, runID, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return
	}

	now := time.Now().UTC()
	job.Running = false
	job.LastRun = &now
	job.LastRunID = runID
	job.LastResult = result
}

// SetNextRun records when the scheduler will fire the job again
func (r *JobRegistry) SetNextRun(name string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		job = &JobStatus{Name: name}
		r.jobs[name] = job
	}
	job.NextRun = &at
}

// Jobs snapshots every tracked job, sorted by name
func (r *JobRegistry) Jobs() []JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := make([]JobStatus, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs
}

// Scheduler fires library syncs on an interval and on demand, holding the
// cancel func of each in-flight run so shutdown can stop them
type Scheduler struct {
	manager  MediaManager
	registry *JobRegistry
	interval time.Duration
	cancels  *cache.Cache[string, context.CancelFunc]
}

func NewScheduler(m MediaManager, registry *JobRegistry, interval time.Duration) *Scheduler {
	return &Scheduler{
		manager:  m,
		registry: registry,
		interval: interval,
		cancels:  cache.New[string, context.CancelFunc](),
	}
}

// Run blocks, firing a sync immediately and then on every interval tick,
// until the context is canceled. A zero interval disables the ticker.
func (s *Scheduler) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if s.interval <= 0 {
		log.Info("sync interval disabled, waiting for manual triggers")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.registry.SetNextRun(JobLibrarySync, time.Now().UTC().Add(s.interval))
		s.runSync(ctx)

		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TriggerSync starts a run in the background, detached from the caller's
// cancellation. It reports the run id and whether a run actually started.
func (s *Scheduler) TriggerSync(ctx context.Context) (string, bool) {
	if !s.registry.Begin(JobLibrarySync) {
		return "", false
	}

	runID := uuid.NewString()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancels.Set(runID, cancel)

	go func() {
		defer cancel()
		defer s.cancels.Delete(runID)
		s.execute(runCtx, runID)
	}()

	return runID, true
}

// Stop cancels every in-flight run
func (s *Scheduler) Stop() {
	for _, runID := range s.cancels.Keys() {
		if cancel, ok := s.cancels.Get(runID); ok {
			cancel()
		}
		s.cancels.Delete(runID)
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	if !s.registry.Begin(JobLibrarySync) {
		logger.FromCtx(ctx).Warn("library sync already running, skipping tick")
		return
	}

	runID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)
	s.cancels.Set(runID, cancel)
	defer cancel()
	defer s.cancels.Delete(runID)

	s.execute(runCtx, runID)
}

// execute runs one sync pass; the caller already holds the registry slot
func (s *Scheduler) execute(ctx context.Context, runID string) {
	log := logger.FromCtx(ctx).With("runID", runID)
	ctx = logger.WithCtx(ctx, log)

	log.Info("library sync starting")

	result, err := s.manager.RunFullSync(ctx)
	if err != nil {
		log.Errorw("library sync failed", "error", err)
		s.registry.End(JobLibrarySync, runID, fmt.Sprintf("failed: %v", err))
		return
	}

	s.registry.End(JobLibrarySync, runID, fmt.Sprintf("processed %d added %d updated %d removed %d errors %d",
		result.Processed, result.Added, result.Updated, result.Removed, len(result.Errors)))
}
