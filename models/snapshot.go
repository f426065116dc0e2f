package models

import "time"

// RateSnapshot is one observed price point for a property, appended to the
// rate_snapshots time series for later trend display. Pure side-effect data,
// never on the response-critical path.
type RateSnapshot struct {
	Supplier    string    `bson:"supplier" json:"supplier"`
	HotelID     string    `bson:"supplierHotelId" json:"supplierHotelId"`
	RateID      string    `bson:"rateId" json:"rateId"`
	GeoHash     string    `bson:"geoHash" json:"geoHash"`
	TotalAmount float64   `bson:"totalAmount" json:"totalAmount"`
	Currency    string    `bson:"currency" json:"currency"`
	CapturedAt  time.Time `bson:"capturedAt" json:"capturedAt"`
}

// TrendPoint is one (amount, timestamp) pair of a property's price history,
// ordered ascending by capture time.
type TrendPoint struct {
	TotalAmount float64   `bson:"totalAmount" json:"totalAmount"`
	CapturedAt  time.Time `bson:"capturedAt" json:"capturedAt"`
}

// SupportOutcome is one recorded historical outcome for a property, the raw
// material the risk engine aggregates into reliability signals.
type SupportOutcome struct {
	HotelID        string    `bson:"hotelId" json:"hotelId"`
	Confirmed      bool      `bson:"confirmed" json:"confirmed"`
	SoldOutBefore  bool      `bson:"soldOutBeforeCheckIn" json:"soldOutBeforeCheckIn"`
	QuoteChanged   bool      `bson:"quoteChanged" json:"quoteChanged"`
	BookingFailed  bool      `bson:"bookingFailed" json:"bookingFailed"`
	RecordedAt     time.Time `bson:"recordedAt" json:"recordedAt"`
}
