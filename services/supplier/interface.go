package supplier

import (
	"context"
	"encoding/json"

	"roadstay/models"
)

// SearchParams describe one inventory search around a point.
type SearchParams struct {
	Lat         float64
	Lng         float64
	RadiusMiles float64
	CheckIn     string // ISO date
	CheckOut    string // ISO date
	Guests      int
}

// BookingParams carry guest info plus the opaque rate payload needed to book.
type BookingParams struct {
	GuestFirstName string
	GuestLastName  string
	Email          string
	Phone          string
	RatePayload    json.RawMessage
}

// QuoteResult is a re-price of a previously seen rate.
type QuoteResult struct {
	OK             bool
	FinalTotal     float64
	UpdatedPayload json.RawMessage
	Error          string
}

// BookingResult is the supplier-side confirmation of a booking.
type BookingResult struct {
	BookingID          string
	ConfirmationNumber string
}

// Adapter is the single interface all upstream inventory providers implement.
// The concrete implementation is chosen once at startup and injected; call
// sites never branch on which supplier is behind it.
type Adapter interface {
	Name() string
	Search(ctx context.Context, params SearchParams) ([]models.Offer, error)
	Quote(ctx context.Context, ratePayload json.RawMessage) (QuoteResult, error)
	Book(ctx context.Context, params BookingParams) (BookingResult, error)
	Cancel(ctx context.Context, bookingID string) error
	// CityCoordinates resolves a place name; (nil, nil) means not found.
	CityCoordinates(ctx context.Context, cityName string) (*models.Coordinates, error)
}
