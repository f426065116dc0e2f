package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports reachability of the engine's backing stores. The
// supplier is deliberately not probed here: its availability is degraded
// per-stop at search time, not globally.
type HealthStatus struct {
	Mongo      bool      `json:"mongo"`
	OfferCache bool      `json:"offerCache"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings the offer cache and Mongo once a minute and keeps
// the result in memory for the health endpoint.
func StartHealthMonitor(cacheClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			cacheHealthy := cacheClient.Ping(ctx).Err() == nil
			mongoHealthy := mongoClient.Ping(ctx, nil) == nil

			healthMu.Lock()
			currentHealth = HealthStatus{
				Mongo:      mongoHealthy,
				OfferCache: cacheHealthy,
				CheckedAt:  time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
