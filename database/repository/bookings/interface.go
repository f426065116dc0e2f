package bookingsRepo

import (
	"context"

	"roadstay/database"
	"roadstay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists reservations through their status lifecycle.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetConfirmation(ctx context.Context, id, supplierBookingID, confirmationNumber string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("roadstay")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
