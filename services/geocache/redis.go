package geocache

import (
	"context"
	"encoding/json"
	"time"

	"roadstay/models"

	"github.com/go-redis/redis/v8"
)

// RedisOfferCache backs the geo-cell cache with Redis, whose native TTL
// enforces the expiry invariant: an expired key is simply absent.
type RedisOfferCache struct {
	client *redis.Client
}

// NewRedisOfferCache wraps an existing Redis client.
func NewRedisOfferCache(client *redis.Client) *RedisOfferCache {
	return &RedisOfferCache{client: client}
}

func (c *RedisOfferCache) Get(ctx context.Context, key Key) ([]models.Offer, bool, error) {
	data, err := c.client.Get(ctx, key.String()).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var offers []models.Offer
	if err := json.Unmarshal([]byte(data), &offers); err != nil {
		// Corrupt entry: treat as a miss, a fresh search will overwrite it.
		return nil, false, nil
	}
	return offers, true, nil
}

func (c *RedisOfferCache) Put(ctx context.Context, key Key, offers []models.Offer, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key.String(), data, ttl).Err()
}
