package snapshotsRepo

import (
	"context"

	"roadstay/database"
	"roadstay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RateSnapshotRepository is the time-ordered store behind the price history
// recorder. Append is write-only; Trend reads back one property's series.
type RateSnapshotRepository interface {
	Append(ctx context.Context, snapshots []models.RateSnapshot) error
	Trend(ctx context.Context, hotelID string) ([]models.TrendPoint, error)
}

type mongoSnapshotRepo struct {
	coll *mongo.Collection
}

// NewMongoSnapshotRepo returns a new RateSnapshotRepository instance using MongoDB.
func NewMongoSnapshotRepo() RateSnapshotRepository {
	db := database.MongoClient.Database("roadstay")
	return &mongoSnapshotRepo{
		coll: db.Collection("rate_snapshots"),
	}
}
