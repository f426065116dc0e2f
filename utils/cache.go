// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"roadstay/config"

	"github.com/go-redis/redis/v8"
)

// OfferCacheClient is the Redis client backing the geo-cell offer cache.
var OfferCacheClient *redis.Client

// InitOfferCache initializes the Redis client for the geo-cell offer cache.
func InitOfferCache() {
	OfferCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := OfferCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Offer Cache): %v", err)
	}
}

// GetOfferCacheClient returns the Redis client for the geo-cell offer cache.
func GetOfferCacheClient() *redis.Client {
	if OfferCacheClient == nil {
		InitOfferCache()
	}
	return OfferCacheClient
}
