package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTriggerFixture builds a running scheduler with counting executors
// for every job kind, plus a trigger wired to it.
func newTriggerFixture(t *testing.T, cfg CronTriggerConfig) (*CronTrigger, map[JobKind]*fakeExecutor) {
	t.Helper()

	s := NewScheduler(testConfig(), nil, zap.NewNop())
	executors := make(map[JobKind]*fakeExecutor)
	for _, kind := range AllJobKinds() {
		ex := newFakeExecutor(0)
		executors[kind] = ex
		s.Register(kind, ex)
	}
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { stopScheduler(t, s) })

	return NewCronTrigger(cfg, s, zap.NewNop()), executors
}

func TestCronTrigger_IntervalJobsFireWhenDue(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	trigger, executors := newTriggerFixture(t, cfg)

	// Quiet hour so the daily/weekly jobs stay out of the way
	now := time.Date(2026, 8, 26, 3, 0, 0, 0, time.Local) // a Wednesday

	trigger.checkAndTrigger(now)
	waitFor(t, executors[JobKindHeartbeat].done, 1)
	waitFor(t, executors[JobKindLowStockRestock].done, 1)

	// One minute later: neither interval has elapsed again
	trigger.checkAndTrigger(now.Add(time.Minute))
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 1, executors[JobKindHeartbeat].callCount())
	assert.Equal(t, 1, executors[JobKindLowStockRestock].callCount())

	// Past the heartbeat interval, before the restock interval
	trigger.checkAndTrigger(now.Add(cfg.HeartbeatInterval + time.Second))
	waitFor(t, executors[JobKindHeartbeat].done, 1)
	assert.Equal(t, 2, executors[JobKindHeartbeat].callCount())
	assert.Equal(t, 1, executors[JobKindLowStockRestock].callCount())
}

func TestCronTrigger_DailyReminderFiresOncePerDay(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	trigger, executors := newTriggerFixture(t, cfg)

	day := time.Date(2026, 8, 26, cfg.ReminderHour, 0, 0, 0, time.Local)

	trigger.checkAndTrigger(day)
	waitFor(t, executors[JobKindOrderReminders].done, 1)

	// Same day, later within the hour: must not fire again
	trigger.checkAndTrigger(day.Add(30 * time.Minute))
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 1, executors[JobKindOrderReminders].callCount())

	// Next day at the reminder hour: fires again
	trigger.checkAndTrigger(day.AddDate(0, 0, 1))
	waitFor(t, executors[JobKindOrderReminders].done, 1)
	assert.Equal(t, 2, executors[JobKindOrderReminders].callCount())
}

func TestCronTrigger_WeeklyReportFiresOnConfiguredDay(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	trigger, executors := newTriggerFixture(t, cfg)

	wednesday := time.Date(2026, 8, 26, cfg.ReportHour, 0, 0, 0, time.Local)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	trigger.checkAndTrigger(wednesday)
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 0, executors[JobKindWeeklyReport].callCount())

	monday := time.Date(2026, 8, 31, cfg.ReportHour, 0, 0, 0, time.Local)
	require.Equal(t, time.Monday, monday.Weekday())

	trigger.checkAndTrigger(monday)
	waitFor(t, executors[JobKindWeeklyReport].done, 1)

	// Same Monday, later tick in the hour: must not fire again
	trigger.checkAndTrigger(monday.Add(10 * time.Minute))
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 1, executors[JobKindWeeklyReport].callCount())
}

func TestCronTrigger_TriggerNow(t *testing.T) {
	trigger, executors := newTriggerFixture(t, DefaultCronTriggerConfig())

	require.NoError(t, trigger.TriggerNow(JobKindWeeklyReport))
	waitFor(t, executors[JobKindWeeklyReport].done, 1)
	assert.Equal(t, 1, executors[JobKindWeeklyReport].callCount())
}

func TestCronTrigger_StartStop(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = 10 * time.Millisecond
	trigger, _ := newTriggerFixture(t, cfg)

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background())) // idempotent

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(ctx))
	require.NoError(t, trigger.Stop(ctx)) // idempotent
}
