// Package pricehistory appends observed rates to a per-property time series
// for trend display. A pure side-effect sink, never on the response-critical
// path: recording is fire-and-forget and failures are logged, not propagated.
package pricehistory

import (
	"encoding/json"
	"time"

	"roadstay/models"
	"roadstay/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeSnapshotRecord is the asynq task type for rate snapshot recording.
const TypeSnapshotRecord = "snapshot:record"

// SnapshotPayload is the task payload the background worker consumes.
type SnapshotPayload struct {
	Supplier   string         `json:"supplier"`
	GeoHash    string         `json:"geoHash"`
	CapturedAt time.Time      `json:"capturedAt"`
	Offers     []models.Offer `json:"offers"`
}

// Recorder accepts observed offers for background persistence.
type Recorder interface {
	Record(offers []models.Offer, geoHash, supplierName string)
}

// AsynqRecorder enqueues snapshot tasks onto the Redis-backed queue. The
// worker in cron/ drains the queue and writes to Mongo.
type AsynqRecorder struct {
	client *asynq.Client
}

// NewAsynqRecorder wraps an asynq client.
func NewAsynqRecorder(client *asynq.Client) *AsynqRecorder {
	return &AsynqRecorder{client: client}
}

// Record enqueues one snapshot task. Errors are logged and swallowed: price
// history must never affect the search response.
func (r *AsynqRecorder) Record(offers []models.Offer, geoHash, supplierName string) {
	if len(offers) == 0 {
		return
	}
	payload, err := json.Marshal(SnapshotPayload{
		Supplier:   supplierName,
		GeoHash:    geoHash,
		CapturedAt: time.Now(),
		Offers:     offers,
	})
	if err != nil {
		utils.GetLogger().Warn("failed to marshal snapshot payload", zap.Error(err))
		return
	}
	if _, err := r.client.Enqueue(asynq.NewTask(TypeSnapshotRecord, payload)); err != nil {
		utils.GetLogger().Warn("failed to enqueue rate snapshot", zap.String("geoHash", geoHash), zap.Error(err))
	}
}

// Snapshots flattens offers into one row per (property, rate).
func Snapshots(p SnapshotPayload) []models.RateSnapshot {
	capturedAt := p.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}
	var rows []models.RateSnapshot
	for _, offer := range p.Offers {
		for _, rate := range offer.Rates {
			rows = append(rows, models.RateSnapshot{
				Supplier:    p.Supplier,
				HotelID:     offer.HotelID,
				RateID:      rate.RateID,
				GeoHash:     p.GeoHash,
				TotalAmount: rate.TotalAmount,
				Currency:    rate.Currency,
				CapturedAt:  capturedAt,
			})
		}
	}
	return rows
}

// NopRecorder discards snapshots; used in tests and when the queue is down.
type NopRecorder struct{}

func (NopRecorder) Record([]models.Offer, string, string) {}

var _ Recorder = (*AsynqRecorder)(nil)
