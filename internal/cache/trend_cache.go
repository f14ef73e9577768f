package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bookforge/internal/model"
)

// TrendCache holds per-question feedback trend analyses. Short TTL: trends
// are cheap to recompute and new feedback should show up quickly.
type TrendCache interface {
	Set(ctx context.Context, questionID string, trend *model.TrendAnalysis) error
	Get(ctx context.Context, questionID string) (*model.TrendAnalysis, error)
	Invalidate(ctx context.Context, questionID string) error
}

type trendCache struct {
	client *redis.Client
}

func NewTrendCache(client *redis.Client) TrendCache {
	return &trendCache{client: client}
}

func (c *trendCache) Set(ctx context.Context, questionID string, trend *model.TrendAnalysis) error {
	data, err := json.Marshal(trend)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "trend:"+questionID, data, 5*time.Minute).Err()
}

func (c *trendCache) Get(ctx context.Context, questionID string) (*model.TrendAnalysis, error) {
	data, err := c.client.Get(ctx, "trend:"+questionID).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var trend model.TrendAnalysis
	if err := json.Unmarshal([]byte(data), &trend); err != nil {
		return nil, err
	}
	return &trend, nil
}

func (c *trendCache) Invalidate(ctx context.Context, questionID string) error {
	return c.client.Del(ctx, "trend:"+questionID).Err()
}
