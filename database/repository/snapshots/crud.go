package snapshotsRepo

import (
	"context"
	"time"

	"roadstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Append inserts one row per observed rate. CapturedAt is stamped here when
// the caller left it zero.
func (r *mongoSnapshotRepo) Append(ctx context.Context, snapshots []models.RateSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(snapshots))
	for _, s := range snapshots {
		if s.CapturedAt.IsZero() {
			s.CapturedAt = now
		}
		docs = append(docs, s)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// Trend returns a property's observed rates ascending by capture time.
func (r *mongoSnapshotRepo) Trend(ctx context.Context, hotelID string) ([]models.TrendPoint, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "capturedAt", Value: 1}}).
		SetProjection(bson.M{"totalAmount": 1, "capturedAt": 1})

	cursor, err := r.coll.Find(ctx, bson.M{"supplierHotelId": hotelID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []models.TrendPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
