package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/infrastructure/persistence"
)

// fakeExecutor counts executions and can fail a configured number of times
type fakeExecutor struct {
	mu        sync.Mutex
	calls     int
	failTimes int
	done      chan struct{}
}

func newFakeExecutor(failTimes int) *fakeExecutor {
	return &fakeExecutor{failTimes: failTimes, done: make(chan struct{}, 16)}
}

func (e *fakeExecutor) Execute(ctx context.Context, job *Job) error {
	e.mu.Lock()
	e.calls++
	shouldFail := e.calls <= e.failTimes
	e.mu.Unlock()

	e.done <- struct{}{}
	if shouldFail {
		return errors.New("boom")
	}
	return nil
}

func (e *fakeExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// fakeRecorder collects persisted run records
type fakeRecorder struct {
	mu      sync.Mutex
	records []persistence.JobRecord
}

func (r *fakeRecorder) Record(ctx context.Context, record persistence.JobRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *fakeRecorder) all() []persistence.JobRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]persistence.JobRecord(nil), r.records...)
}

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:           true,
		MaxConcurrentJobs: 2,
		JobTimeout:        time.Second,
		RetryAttempts:     2,
		RetryDelay:        time.Millisecond,
	}
}

func waitFor(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for execution %d of %d", i+1, n)
		}
	}
}

func TestScheduler_SubmitAndExecute(t *testing.T) {
	recorder := &fakeRecorder{}
	s := NewScheduler(testConfig(), recorder, zap.NewNop())
	executor := newFakeExecutor(0)
	s.Register(JobKindHeartbeat, executor)

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	require.NoError(t, s.Submit(JobKindHeartbeat))
	waitFor(t, executor.done, 1)

	assert.Eventually(t, func() bool {
		records := recorder.all()
		return len(records) == 1 && records[0].Status == string(JobStatusSuccess)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, executor.callCount())
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	recorder := &fakeRecorder{}
	s := NewScheduler(testConfig(), recorder, zap.NewNop())
	executor := newFakeExecutor(1) // fail once, then succeed
	s.Register(JobKindWeeklyReport, executor)

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	require.NoError(t, s.Submit(JobKindWeeklyReport))
	waitFor(t, executor.done, 2)

	assert.Eventually(t, func() bool {
		records := recorder.all()
		if len(records) != 2 {
			return false
		}
		return records[0].Status == string(JobStatusFailed) &&
			records[1].Status == string(JobStatusSuccess)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	recorder := &fakeRecorder{}
	s := NewScheduler(testConfig(), recorder, zap.NewNop())
	executor := newFakeExecutor(100) // always fails
	s.Register(JobKindLowStockRestock, executor)

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	require.NoError(t, s.Submit(JobKindLowStockRestock))
	// 1 initial attempt + 2 retries
	waitFor(t, executor.done, 3)

	assert.Eventually(t, func() bool {
		return len(recorder.all()) == 3
	}, 2*time.Second, 10*time.Millisecond)
	// Give a moment for any extra (incorrect) retry to surface
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, executor.callCount())
}

func TestScheduler_SubmitUnknownKind(t *testing.T) {
	s := NewScheduler(testConfig(), nil, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	err := s.Submit(JobKindHeartbeat)
	assert.ErrorIs(t, err, ErrUnknownJobKind)
}

func TestScheduler_SubmitWhenStopped(t *testing.T) {
	s := NewScheduler(testConfig(), nil, zap.NewNop())
	s.Register(JobKindHeartbeat, newFakeExecutor(0))

	err := s.Submit(JobKindHeartbeat)
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	s := NewScheduler(testConfig(), nil, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	stopScheduler(t, s)
}

func TestJob_RetryBookkeeping(t *testing.T) {
	job := NewJob(JobKindHeartbeat, 2)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, JobStatusPending, job.Status)
	require.NotNil(t, job.NextRetryAt)

	job.Fail("boom")
	job.ScheduleRetry(time.Minute)
	job.Fail("boom")
	assert.False(t, job.ShouldRetry())
}

func stopScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
