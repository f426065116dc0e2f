package outcomesRepo

import (
	"context"

	"roadstay/database"
	"roadstay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SignalAggregate is the per-property rollup of historical outcomes consumed
// by the risk engine. All rates are in [0,1].
type SignalAggregate struct {
	Total                  int     `bson:"total"`
	ConfirmationConfidence float64 `bson:"confirmationConfidence"`
	SupplyPressure         float64 `bson:"supplyPressure"`
	QuoteFailRate          float64 `bson:"quoteFailRate"`
	BookingFailRate        float64 `bson:"bookingFailRate"`
}

// SupportOutcomeRepository stores booking outcomes and aggregates them into
// reliability signals.
type SupportOutcomeRepository interface {
	Record(ctx context.Context, outcome models.SupportOutcome) error
	AggregateByHotel(ctx context.Context, hotelID string) (*SignalAggregate, error)
}

type mongoOutcomeRepo struct {
	coll *mongo.Collection
}

// NewMongoOutcomeRepo returns a new SupportOutcomeRepository instance using MongoDB.
func NewMongoOutcomeRepo() SupportOutcomeRepository {
	db := database.MongoClient.Database("roadstay")
	return &mongoOutcomeRepo{
		coll: db.Collection("support_outcomes"),
	}
}
