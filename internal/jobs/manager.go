// Package jobs runs background operations on a bounded worker pool and keeps
// their status for later inspection.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
)

const (
	cleanupInterval = time.Hour
	retention       = 24 * time.Hour
)

// Func is the body of a job. The returned map is stored as the job result.
type Func func(ctx context.Context) (map[string]string, error)

// Manager handles background job execution and tracking
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*model.Job
	workers chan struct{} // limits concurrent jobs
	logger  *slog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewManager creates a job manager running at most maxWorkers jobs at once.
func NewManager(maxWorkers int, logger *slog.Logger) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default().With("component", "jobs")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		workers: make(chan struct{}, maxWorkers),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins the periodic cleanup of finished jobs.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.ctx.Err() != nil {
			return
		}
		m.logger.Info("job manager started", "max_workers", cap(m.workers))
		m.wg.Add(1)
		go m.cleanupRoutine()
	})
}

// Stop cancels running jobs and waits for them to return.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		// cancel under mu so no Submit can Add after Wait begins
		m.mu.Lock()
		m.cancel()
		m.mu.Unlock()
		m.wg.Wait()
		m.logger.Info("job manager stopped")
	})
}

// Submit records a new job and runs fn in the background once a worker is
// free. It returns the job ID immediately.
func (m *Manager) Submit(jobType model.JobType, location string, fn Func) (string, error) {
	job := &model.Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		Location:  location,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		return "", fmt.Errorf("job manager is shutting down")
	}
	m.jobs[job.ID] = job
	m.wg.Add(1)
	m.mu.Unlock()
	m.logger.Info("job created", "job_id", job.ID, "type", job.Type, "location", location)

	go m.run(job.ID, fn)
	return job.ID, nil
}

func (m *Manager) run(jobID string, fn Func) {
	defer m.wg.Done()

	select {
	case m.workers <- struct{}{}:
	case <-m.ctx.Done():
		m.finish(jobID, model.JobStatusCancelled, nil, "job manager shutting down")
		return
	}
	defer func() { <-m.workers }()

	m.mu.Lock()
	job := m.jobs[jobID]
	now := time.Now()
	job.Status = model.JobStatusRunning
	job.StartedAt = &now
	m.mu.Unlock()

	start := time.Now()
	result, err := fn(m.ctx)
	switch {
	case err != nil && m.ctx.Err() != nil:
		m.finish(jobID, model.JobStatusCancelled, nil, err.Error())
	case err != nil:
		m.finish(jobID, model.JobStatusFailed, nil, err.Error())
		m.logger.Warn("job failed", "job_id", jobID, "duration", time.Since(start), "err", err)
	default:
		m.finish(jobID, model.JobStatusCompleted, result, "")
		m.logger.Info("job completed", "job_id", jobID, "duration", time.Since(start))
	}
}

func (m *Manager) finish(jobID string, status model.JobStatus, result map[string]string, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	now := time.Now()
	job.Status = status
	job.Result = result
	job.Error = errorMsg
	job.CompletedAt = &now
}

// GetJob retrieves a copy of the job with jobID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs for location, oldest first. An empty location
// lists every job and a nil status matches any status.
func (m *Manager) ListJobs(location string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if location != "" && job.Location != location {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}
	if cleaned > 0 {
		m.logger.Info("cleaned up old jobs", "count", cleaned)
	}
	return cleaned
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(retention)
		case <-m.ctx.Done():
			return
		}
	}
}

func copyJob(job *model.Job) *model.Job {
	c := *job
	if job.Result != nil {
		c.Result = make(map[string]string, len(job.Result))
		for k, v := range job.Result {
			c.Result[k] = v
		}
	}
	return &c
}
