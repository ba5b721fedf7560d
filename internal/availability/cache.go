package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianstm/fithub-orbital25-sub001/internal/logger"
	"github.com/brianstm/fithub-orbital25-sub001/internal/metrics"
	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"

	"github.com/redis/go-redis/v9"
)

// Cache keeps computed peak-hour analyses in redis for a short TTL.
// Peak-hour data is advisory, so serving a slightly stale analysis is
// fine and every operation fails open.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

func cacheKey(gymID int) string {
	return fmt.Sprintf("peakhours:%d", gymID)
}

func (c *Cache) Get(ctx context.Context, gymID int) (*schedule.PeakAnalysis, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, cacheKey(gymID)).Bytes()
	if err != nil {
		metrics.RecordPeakHoursCache("miss")
		return nil, false
	}

	var analysis schedule.PeakAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		logger.Error("Bad cached peak-hours payload", "error", err, "gym_id", gymID)
		metrics.RecordPeakHoursCache("miss")
		return nil, false
	}

	metrics.RecordPeakHoursCache("hit")
	return &analysis, true
}

func (c *Cache) Set(ctx context.Context, gymID int, analysis *schedule.PeakAnalysis) {
	if c == nil || c.redis == nil {
		return
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, cacheKey(gymID), data, c.ttl).Err(); err != nil {
		logger.Error("Failed to cache peak-hours analysis", "error", err, "gym_id", gymID)
	}
}

// Invalidate drops a gym's cached analysis, e.g. after bulk booking
// imports. Best effort.
func (c *Cache) Invalidate(ctx context.Context, gymID int) {
	if c == nil || c.redis == nil {
		return
	}
	c.redis.Del(ctx, cacheKey(gymID))
}
