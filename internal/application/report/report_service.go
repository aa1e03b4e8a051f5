package report

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/trade"
)

// cacheKeyWeekly is the cache key for the weekly report snapshot.
const cacheKeyWeekly = "report:weekly"

// WeeklyReportResponse is the derived weekly aggregate: entity counts and
// total revenue. Revenue is serialized as a decimal string, never a
// binary float.
type WeeklyReportResponse struct {
	TotalCustomers int64     `json:"total_customers"`
	TotalOrders    int64     `json:"total_orders"`
	TotalRevenue   string    `json:"total_revenue"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ReportCache caches computed report snapshots for a short TTL so the
// scheduled reporter and ad-hoc callers do not recompute the aggregate on
// every request. A miss returns (nil, false, nil).
type ReportCache interface {
	Get(ctx context.Context, key string) (*WeeklyReportResponse, bool, error)
	Set(ctx context.Context, key string, report *WeeklyReportResponse, ttl time.Duration) error
}

// ReportService produces read-only aggregates over the CRM entities.
type ReportService struct {
	customerRepo partner.CustomerRepository
	orderRepo    trade.OrderRepository
	cache        ReportCache
	cacheTTL     time.Duration
}

// NewReportService creates a new ReportService. The cache is optional;
// a nil cache disables caching.
func NewReportService(customerRepo partner.CustomerRepository, orderRepo trade.OrderRepository, cache ReportCache, cacheTTL time.Duration) *ReportService {
	return &ReportService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// WeeklyReport returns the current customer count, order count and total
// revenue. Revenue is the exact decimal sum of every order's total,
// computed by the store. Cache faults are treated as misses; the report
// must still be produced when the cache is down.
func (s *ReportService) WeeklyReport(ctx context.Context) (*WeeklyReportResponse, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKeyWeekly); err == nil && ok {
			return cached, nil
		}
	}

	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReportResponse{
		TotalCustomers: customers,
		TotalOrders:    orders,
		TotalRevenue:   revenue.StringFixed(2),
		GeneratedAt:    time.Now(),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyWeekly, report, s.cacheTTL)
	}
	return report, nil
}
