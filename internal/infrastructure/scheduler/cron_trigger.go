package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CronTriggerConfig holds the cadence of each reporter job
type CronTriggerConfig struct {
	// Interval jobs
	HeartbeatInterval time.Duration
	RestockInterval   time.Duration

	// ReminderHour is the hour of day (local time) the daily reminder scan runs
	ReminderHour int

	// ReportWeekday and ReportHour pin the weekly report run
	ReportWeekday time.Weekday
	ReportHour    int

	// CheckInterval is how often to check whether a job is due
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		HeartbeatInterval: 5 * time.Minute,
		RestockInterval:   12 * time.Hour,
		ReminderHour:      8,
		ReportWeekday:     time.Monday,
		ReportHour:        6,
		CheckInterval:     30 * time.Second,
	}
}

// CronTrigger submits reporter jobs to the scheduler on their cadences:
// heartbeat and restock run on fixed intervals, the reminder scan runs
// once per day, the weekly report once per week. A missed submission
// (full queue, stopped scheduler) is logged and retried on the next tick.
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastHeartbeat    time.Time
	lastRestock      time.Time
	lastReminderDate string // date we last ran the reminder scan
	lastReportDate   string // date we last ran the weekly report
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Duration("heartbeat_interval", c.config.HeartbeatInterval),
		zap.Duration("restock_interval", c.config.RestockInterval),
		zap.Int("reminder_hour", c.config.ReminderHour),
		zap.String("report_weekday", c.config.ReportWeekday.String()),
		zap.Int("report_hour", c.config.ReportHour),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks periodically whether any job is due
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(time.Now())
		}
	}
}

// checkAndTrigger submits each job whose cadence is due at the given time
func (c *CronTrigger) checkAndTrigger(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastHeartbeat) >= c.config.HeartbeatInterval {
		if c.submit(JobKindHeartbeat) {
			c.lastHeartbeat = now
		}
	}

	if now.Sub(c.lastRestock) >= c.config.RestockInterval {
		if c.submit(JobKindLowStockRestock) {
			c.lastRestock = now
		}
	}

	currentDate := now.Format("2006-01-02")

	if c.lastReminderDate != currentDate && now.Hour() == c.config.ReminderHour {
		if c.submit(JobKindOrderReminders) {
			c.lastReminderDate = currentDate
		}
	}

	if c.lastReportDate != currentDate &&
		now.Weekday() == c.config.ReportWeekday &&
		now.Hour() == c.config.ReportHour {
		if c.submit(JobKindWeeklyReport) {
			c.lastReportDate = currentDate
		}
	}
}

// submit enqueues one job run, logging any submission failure
func (c *CronTrigger) submit(kind JobKind) bool {
	if err := c.scheduler.Submit(kind); err != nil {
		c.logger.Error("Failed to submit scheduled job",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return false
	}
	return true
}

// TriggerNow submits one job run outside its cadence
func (c *CronTrigger) TriggerNow(kind JobKind) error {
	return c.scheduler.Submit(kind)
}
