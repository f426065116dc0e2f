package outcomesRepo

import (
	"context"
	"time"

	"roadstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Record inserts a single outcome row.
func (r *mongoOutcomeRepo) Record(ctx context.Context, outcome models.SupportOutcome) error {
	if outcome.RecordedAt.IsZero() {
		outcome.RecordedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, outcome)
	return err
}

// AggregateByHotel rolls a property's outcomes up into reliability rates.
// Returns nil when the property has no history; the caller applies neutral
// defaults in that case.
func (r *mongoOutcomeRepo) AggregateByHotel(ctx context.Context, hotelID string) (*SignalAggregate, error) {
	boolAvg := func(field string) bson.M {
		return bson.M{"$avg": bson.M{"$cond": bson.A{"$" + field, 1.0, 0.0}}}
	}

	pipeline := []bson.M{
		{"$match": bson.M{"hotelId": hotelID}},
		{"$group": bson.M{
			"_id":                    nil,
			"total":                  bson.M{"$sum": 1},
			"confirmationConfidence": boolAvg("confirmed"),
			"supplyPressure":         boolAvg("soldOutBeforeCheckIn"),
			"quoteFailRate":          boolAvg("quoteChanged"),
			"bookingFailRate":        boolAvg("bookingFailed"),
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []SignalAggregate
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0].Total == 0 {
		return nil, nil
	}
	return &results[0], nil
}
