package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bookforge/internal/model"
)

// ProfileCache holds inferred writing profiles so progression analysis does
// not rerun on every generation request.
type ProfileCache interface {
	Set(ctx context.Context, authorID string, profile *model.UserWritingProfile) error
	Get(ctx context.Context, authorID string) (*model.UserWritingProfile, error)
	Delete(ctx context.Context, authorID string) error
}

type profileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) ProfileCache {
	return &profileCache{client: client}
}

func (c *profileCache) Set(ctx context.Context, authorID string, profile *model.UserWritingProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "profile:"+authorID, data, 1*time.Hour).Err()
}

func (c *profileCache) Get(ctx context.Context, authorID string) (*model.UserWritingProfile, error) {
	data, err := c.client.Get(ctx, "profile:"+authorID).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var profile model.UserWritingProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *profileCache) Delete(ctx context.Context, authorID string) error {
	return c.client.Del(ctx, "profile:"+authorID).Err()
}
