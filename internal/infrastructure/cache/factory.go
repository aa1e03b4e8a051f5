package cache

import (
	"io"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/report"
)

// ReportCacheCloser is a report cache that owns resources needing cleanup
type ReportCacheCloser interface {
	report.ReportCache
	io.Closer
}

// NewReportCache builds the report cache for the given configuration.
// When Redis is disabled or unreachable it falls back to the in-memory
// cache, so report caching keeps working in single-instance deployments
// and when the cache tier is down.
func NewReportCache(redisEnabled bool, redisCfg RedisConfig, logger *zap.Logger) ReportCacheCloser {
	if !redisEnabled {
		logger.Info("using in-memory report cache")
		return NewInMemoryReportCache()
	}

	redisCache, err := NewRedisReportCache(redisCfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory report cache",
			zap.String("addr", redisCfg.Addr),
			zap.Error(err),
		)
		return NewInMemoryReportCache()
	}

	logger.Info("using redis report cache", zap.String("addr", redisCfg.Addr))
	return redisCache
}
