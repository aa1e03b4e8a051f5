package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestBusinessMetrics(t *testing.T, provider telemetry.StockMetricsProvider) *telemetry.BusinessMetrics {
	t.Helper()

	logger := zaptest.NewLogger(t)
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "test-service",
	}, logger)
	require.NoError(t, err)

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:         mp.Meter("test"),
		Logger:        logger,
		StockProvider: provider,
	})
	require.NoError(t, err)
	return bm
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meter cannot be nil")
}

func TestBusinessMetrics_RecordCustomerCreated(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)
	ctx := context.Background()

	bm.RecordCustomerCreated(ctx, telemetry.CreationSourceSingle)
	bm.RecordCustomersCreated(ctx, telemetry.CreationSourceBulk, 5)

	// Zero and negative counts are ignored.
	bm.RecordCustomersCreated(ctx, telemetry.CreationSourceBulk, 0)
	bm.RecordCustomersCreated(ctx, telemetry.CreationSourceBulk, -1)
}

func TestBusinessMetrics_RecordOrderWithAmount(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)
	ctx := context.Background()

	amount := decimal.RequireFromString("1025.49")
	bm.RecordOrderWithAmount(ctx, amount)

	bm.RecordOrderCreated(ctx)
	bm.RecordOrderAmount(ctx, 2550)
}

func TestBusinessMetrics_RecordJobRun(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)
	ctx := context.Background()

	bm.RecordJobRun(ctx, "HEARTBEAT", telemetry.JobOutcomeSuccess)
	bm.RecordJobRun(ctx, "WEEKLY_REPORT", telemetry.JobOutcomeFailed)
}

type mockStockProvider struct {
	count int64
	err   error
	calls int
}

func (m *mockStockProvider) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	m.calls++
	return m.count, m.err
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	provider := &mockStockProvider{count: 3}
	bm := newTestBusinessMetrics(t, provider)
	defer bm.Stop()

	ctx := context.Background()
	bm.StartPeriodicCollection(ctx, 10, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		return provider.calls >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestBusinessMetrics_PeriodicCollection_ProviderError(t *testing.T) {
	provider := &mockStockProvider{err: errors.New("db down")}
	bm := newTestBusinessMetrics(t, provider)
	defer bm.Stop()

	ctx := context.Background()
	bm.StartPeriodicCollection(ctx, 10, 50*time.Millisecond)

	// Collection keeps running despite errors.
	assert.Eventually(t, func() bool {
		return provider.calls >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestBusinessMetrics_StartPeriodicCollection_Once(t *testing.T) {
	bm := newTestBusinessMetrics(t, &mockStockProvider{})
	defer bm.Stop()

	ctx := context.Background()
	bm.StartPeriodicCollection(ctx, 10, time.Hour)
	bm.StartPeriodicCollection(ctx, 10, time.Minute)
	bm.StartPeriodicCollection(ctx, 10, time.Second)
}

func TestBusinessMetrics_Stop_Idempotent(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)
	bm.Stop()
	bm.Stop()
}

func TestJobOutcome_Values(t *testing.T) {
	assert.Equal(t, telemetry.JobOutcome("success"), telemetry.JobOutcomeSuccess)
	assert.Equal(t, telemetry.JobOutcome("failed"), telemetry.JobOutcomeFailed)
}
