package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"roadstay/models"
)

// MockAdapter is the always-available fallback supplier: a fixed roadside
// inventory plus a small city table. Deterministic, no network.
type MockAdapter struct{}

// NewMockAdapter returns the fallback supplier.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

func (m *MockAdapter) Name() string { return "mock" }

var mockCities = map[string]models.Coordinates{
	"new york":      {Lat: 40.7128, Lng: -74.0060},
	"new york city": {Lat: 40.7128, Lng: -74.0060},
	"toronto":       {Lat: 43.6532, Lng: -79.3832},
	"miami":         {Lat: 25.7617, Lng: -80.1918},
	"richmond":      {Lat: 37.5407, Lng: -77.4360},
	"washington":    {Lat: 38.9072, Lng: -77.0369},
	"atlanta":       {Lat: 33.7490, Lng: -84.3880},
	"orlando":       {Lat: 28.5383, Lng: -81.3792},
}

// CityCoordinates resolves against the fixed table; lookup ignores case and
// anything after the first comma ("Richmond, VA" works).
func (m *MockAdapter) CityCoordinates(_ context.Context, cityName string) (*models.Coordinates, error) {
	normalized := strings.ToLower(strings.TrimSpace(strings.SplitN(cityName, ",", 2)[0]))
	if coords, ok := mockCities[normalized]; ok {
		return &coords, nil
	}
	return nil, nil
}

func (m *MockAdapter) Search(_ context.Context, params SearchParams) ([]models.Offer, error) {
	return []models.Offer{
		{
			HotelID:       "mock-1",
			HotelName:     "The Roadside Inn",
			Address:       "123 Highway Ave, Richmond, VA 23219",
			Lat:           37.5407,
			Lng:           -77.4360,
			DistanceMiles: 1.2,
			Rating:        4.2,
			Stars:         3,
			Amenities:     []string{"WiFi", "Free Parking", "24hr Front Desk"},
			Rates: []models.Rate{
				{
					RateID:                 "r1",
					RoomName:               "Queen Bed Non-Smoking",
					TotalAmount:            89.00,
					Currency:               "USD",
					PayType:                models.PayTypeAtProperty,
					Refundable:             true,
					CancellationPolicyText: "Free cancellation until 4 PM today.",
					SupplierPayload:        json.RawMessage(`{"token":"mock-token-1"}`),
				},
			},
		},
		{
			HotelID:       "mock-2",
			HotelName:     "Late Night Suites",
			Address:       "456 Midnight Ln, Richmond, VA",
			DistanceMiles: 3.5,
			Rating:        3.8,
			Stars:         2,
			Amenities:     []string{"WiFi", "Coffee", "Pet Friendly"},
			Rates: []models.Rate{
				{
					RateID:                 "r2",
					RoomName:               "King Studio",
					TotalAmount:            110.00,
					Currency:               "USD",
					PayType:                models.PayTypeAtProperty,
					Refundable:             false,
					CancellationPolicyText: "Non-refundable.",
					SupplierPayload:        json.RawMessage(`{"token":"mock-token-2"}`),
				},
			},
		},
	}, nil
}

func (m *MockAdapter) Quote(_ context.Context, ratePayload json.RawMessage) (QuoteResult, error) {
	return QuoteResult{OK: true, FinalTotal: 89.00, UpdatedPayload: ratePayload}, nil
}

func (m *MockAdapter) Book(_ context.Context, params BookingParams) (BookingResult, error) {
	if params.Email == "" {
		return BookingResult{}, fmt.Errorf("guest email is required")
	}
	return BookingResult{BookingID: "b-mock-123", ConfirmationNumber: "CONF-789"}, nil
}

func (m *MockAdapter) Cancel(_ context.Context, bookingID string) error {
	return nil
}
