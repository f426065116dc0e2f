package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"roadstay/config"
	snapshotsRepo "roadstay/database/repository/snapshots"
	"roadstay/services/pricehistory"

	"github.com/hibiken/asynq"
)

// InitSnapshotWorker runs the background rate-snapshot writer and returns the
// server so main can drain it on shutdown. Tasks still queued at shutdown are
// picked up on the next start rather than dropped.
func InitSnapshotWorker(repo snapshotsRepo.RateSnapshotRepository) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(pricehistory.TypeSnapshotRecord, handleSnapshotTask(repo))

	go func() {
		log.Println("[SnapshotWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SnapshotWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[SnapshotWorker] max retry attempts reached; snapshots disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

func handleSnapshotTask(repo snapshotsRepo.RateSnapshotRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p pricehistory.SnapshotPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SnapshotHandler] invalid payload: %v", err)
			return err
		}

		rows := pricehistory.Snapshots(p)
		if len(rows) == 0 {
			return nil
		}

		if err := repo.Append(ctx, rows); err != nil {
			log.Printf("[SnapshotHandler] failed to append %d snapshots: %v", len(rows), err)
			return err
		}
		return nil
	}
}
