package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crm/backend/internal/application/report"
)

// RedisReportCache implements report.ReportCache using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share cached report snapshots.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisReportCache creates a new Redis-based report cache
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "crm:cache:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "crm:cache:"
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a cached report snapshot. A missing or unreadable value
// is reported as a miss, never an error the caller has to branch on.
func (c *RedisReportCache) Get(ctx context.Context, key string) (*report.WeeklyReportResponse, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	var snapshot report.WeeklyReportResponse
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// Corrupt payload: treat as a miss so the caller recomputes
		return nil, false, nil
	}
	return &snapshot, true, nil
}

// Set stores a report snapshot with the given TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, snapshot *report.WeeklyReportResponse, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisReportCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisReportCache implements report.ReportCache
var _ report.ReportCache = (*RedisReportCache)(nil)
