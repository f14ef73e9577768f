package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bookforge/internal/model"
)

// AnalysisCache memoizes content analysis per chapter. The key includes a
// content hash so edits invalidate naturally instead of requiring explicit
// eviction.
type AnalysisCache interface {
	Set(ctx context.Context, chapterID, content string, analysis *model.ContentAnalysis) error
	Get(ctx context.Context, chapterID, content string) (*model.ContentAnalysis, error)
	Invalidate(ctx context.Context, chapterID string) error
}

type analysisCache struct {
	client *redis.Client
}

func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{client: client}
}

func analysisKey(chapterID, content string) string {
	sum := sha256.Sum256([]byte(content))
	return "analysis:" + chapterID + ":" + hex.EncodeToString(sum[:8])
}

func (c *analysisCache) Set(ctx context.Context, chapterID, content string, analysis *model.ContentAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analysisKey(chapterID, content), data, 30*time.Minute).Err()
}

func (c *analysisCache) Get(ctx context.Context, chapterID, content string) (*model.ContentAnalysis, error) {
	data, err := c.client.Get(ctx, analysisKey(chapterID, content)).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var analysis model.ContentAnalysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *analysisCache) Invalidate(ctx context.Context, chapterID string) error {
	iter := c.client.Scan(ctx, 0, "analysis:"+chapterID+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
