// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the CRM service.
// It tracks customer and order creation, order revenue, background job
// runs, and catalog stock health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	customerCreatedTotal *Counter
	orderCreatedTotal    *Counter
	orderAmountTotal     *Counter
	jobRunTotal          *Counter

	// Gauge metrics (point-in-time values)
	lowStockProducts *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	stockProvider StockMetricsProvider
}

// StockMetricsProvider provides catalog stock data for periodic metrics
// collection. This interface allows the telemetry layer to query stock
// state without depending on the catalog domain directly.
type StockMetricsProvider interface {
	// CountLowStock returns the number of products whose stock is below
	// the given threshold.
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	StockProvider     StockMetricsProvider
	LowStockThreshold int // Default: 10
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	var err error

	bm.customerCreatedTotal, err = NewCounter(
		cfg.Meter,
		"crm_customer_created_total",
		"Total number of customers created",
		"{customers}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"crm_order_created_total",
		"Total number of orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderAmountTotal, err = NewCounter(
		cfg.Meter,
		"crm_order_amount_total",
		"Total order amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.jobRunTotal, err = NewCounter(
		cfg.Meter,
		"crm_job_run_total",
		"Total number of background job runs",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	bm.lowStockProducts, err = NewGauge(
		cfg.Meter,
		"crm_low_stock_products",
		"Number of products below the low-stock threshold",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Customer Metrics
// =============================================================================

// CreationSource distinguishes single from bulk creation for metrics labeling.
type CreationSource string

const (
	CreationSourceSingle CreationSource = "single"
	CreationSourceBulk   CreationSource = "bulk"
)

// RecordCustomerCreated records a customer creation event.
// This should be called from the application layer when a customer is created.
func (bm *BusinessMetrics) RecordCustomerCreated(ctx context.Context, source CreationSource) {
	bm.customerCreatedTotal.Inc(ctx,
		AttrEntity.String("customer"),
		AttrOutcome.String(string(source)),
	)
}

// RecordCustomersCreated records a batch of customer creations at once.
func (bm *BusinessMetrics) RecordCustomersCreated(ctx context.Context, source CreationSource, count int64) {
	if count <= 0 {
		return
	}
	bm.customerCreatedTotal.Add(ctx, count,
		AttrEntity.String("customer"),
		AttrOutcome.String(string(source)),
	)
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderCreated records an order creation event.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context) {
	bm.orderCreatedTotal.Inc(ctx, AttrEntity.String("order"))
}

// RecordOrderAmount records the order amount.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordOrderAmount(ctx context.Context, amountCents int64) {
	bm.orderAmountTotal.Add(ctx, amountCents, AttrEntity.String("order"))
}

// RecordOrderWithAmount is a convenience method that records both order count and amount.
func (bm *BusinessMetrics) RecordOrderWithAmount(ctx context.Context, amount decimal.Decimal) {
	bm.RecordOrderCreated(ctx)

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderAmount(ctx, amountCents)
}

// =============================================================================
// Job Metrics
// =============================================================================

// JobOutcome represents the outcome of a background job run for metrics labeling.
type JobOutcome string

const (
	JobOutcomeSuccess JobOutcome = "success"
	JobOutcomeFailed  JobOutcome = "failed"
)

// RecordJobRun records a completed background job attempt.
func (bm *BusinessMetrics) RecordJobRun(ctx context.Context, kind string, outcome JobOutcome) {
	bm.jobRunTotal.Inc(ctx,
		AttrJobKind.String(kind),
		AttrJobStatus.String(string(outcome)),
	)
}

// =============================================================================
// Stock Metrics
// =============================================================================

// RecordLowStockProducts records the number of products below the low-stock
// threshold. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordLowStockProducts(ctx context.Context, count int64) {
	bm.lowStockProducts.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects stock metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, threshold int, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		if threshold <= 0 {
			threshold = 10
		}

		go bm.runPeriodicCollection(ctx, threshold, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, threshold int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectStockMetrics(ctx, threshold)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStockMetrics(ctx, threshold)
		}
	}
}

// collectStockMetrics collects the low-stock gauge.
func (bm *BusinessMetrics) collectStockMetrics(ctx context.Context, threshold int) {
	if bm.stockProvider == nil {
		bm.logger.Debug("No stock provider configured, skipping stock metrics collection")
		return
	}

	count, err := bm.stockProvider.CountLowStock(ctx, threshold)
	if err != nil {
		bm.logger.Warn("Failed to count low-stock products", zap.Error(err))
		return
	}

	bm.RecordLowStockProducts(ctx, count)
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
