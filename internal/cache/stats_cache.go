package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

const (
	statsKeyPrefix    = "wellnest:stats:"
	generationPrefix  = "wellnest:stats:gen:"
	redisOpTimeout    = 2 * time.Second
	invalidateScanCap = 100
)

type LookupRecorder interface {
	RecordCacheLookup(hit bool)
}

// StatsCache keeps computed cycle statistics in redis under
// wellnest:stats:<owner>:<generation>:<date>. The owner's generation lives in
// wellnest:stats:gen:<owner> and is incremented on every cycle change; entries
// of older generations are unreachable and expire after ttl.
type StatsCache struct {
	client   *redis.Client
	ttl      time.Duration
	recorder LookupRecorder
	logger   *zap.Logger
}

func NewStatsCache(client *redis.Client, ttl time.Duration, recorder LookupRecorder, logger *zap.Logger) *StatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsCache{
		client:   client,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

func StatsKey(ownerID uint, generation uint64, day string) string {
	return fmt.Sprintf("%s%d:%d:%s", statsKeyPrefix, ownerID, generation, day)
}

func GenerationKey(ownerID uint) string {
	return fmt.Sprintf("%s%d", generationPrefix, ownerID)
}

func (c *StatsCache) Generation(ownerID uint) (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	generation, err := c.client.Get(ctx, GenerationKey(ownerID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return generation, nil
}

func (c *StatsCache) Get(ownerID uint, generation uint64, day string) (services.CycleStats, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, StatsKey(ownerID, generation, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(false)
		return services.CycleStats{}, false, nil
	}
	if err != nil {
		c.record(false)
		return services.CycleStats{}, false, fmt.Errorf("redis get: %w", err)
	}

	var stats services.CycleStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		c.logger.Warn("discarding unreadable stats cache entry",
			zap.Uint("owner_id", ownerID),
			zap.String("day", day),
			zap.Error(err),
		)
		c.record(false)
		return services.CycleStats{}, false, nil
	}
	c.record(true)
	return stats, true, nil
}

func (c *StatsCache) Set(ownerID uint, generation uint64, day string, stats services.CycleStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, StatsKey(ownerID, generation, day), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateOwner bumps the owner's generation, then drops the entries left
// behind by earlier generations.
func (c *StatsCache) InvalidateOwner(ownerID uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := c.client.Incr(ctx, GenerationKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}

	pattern := fmt.Sprintf("%s%d:*", statsKeyPrefix, ownerID)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, invalidateScanCap).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (c *StatsCache) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCacheLookup(hit)
	}
}
