package models

import "encoding/json"

// PayTypeAtProperty is the only payment model Roadstay surfaces: nothing is
// collected until check-in.
const PayTypeAtProperty = "PAY_AT_PROPERTY"

// Rate is one priced, bookable room configuration within an Offer.
// SupplierPayload is whatever the upstream needs to later quote or book this
// rate; it is opaque to everything except the supplier integration.
type Rate struct {
	RateID                 string          `bson:"rateId" json:"rateId"`
	RoomName               string          `bson:"roomName" json:"roomName"`
	TotalAmount            float64         `bson:"totalAmount" json:"totalAmount"`
	Currency               string          `bson:"currency" json:"currency"`
	PayType                string          `bson:"payType" json:"payType"`
	Refundable             bool            `bson:"refundable" json:"refundable"`
	CancellationPolicyText string          `bson:"cancellationPolicyText" json:"cancellationPolicyText"`
	SupplierPayload        json.RawMessage `bson:"supplierPayload,omitempty" json:"supplierPayload,omitempty"`
}

// Offer is one bookable property at one point in time. Offers are immutable
// snapshots: a new search always produces new values, cached ones are never
// mutated in place.
type Offer struct {
	HotelID       string       `bson:"hotelId" json:"hotelId"`
	HotelName     string       `bson:"hotelName" json:"hotelName"`
	HotelPhone    string       `bson:"hotelPhone,omitempty" json:"hotelPhone,omitempty"`
	Address       string       `bson:"address,omitempty" json:"address,omitempty"`
	Lat           float64      `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng           float64      `bson:"lng,omitempty" json:"lng,omitempty"`
	DistanceMiles float64      `bson:"distanceMiles" json:"distanceMiles"`
	Rating        float64      `bson:"rating,omitempty" json:"rating,omitempty"`
	Stars         int          `bson:"stars,omitempty" json:"stars,omitempty"`
	Amenities     []string     `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Rates         []Rate       `bson:"rates" json:"rates"`
	SupportRisk   *SupportRisk `bson:"supportRisk,omitempty" json:"supportRisk,omitempty"`
	Confidence    float64      `bson:"confidence,omitempty" json:"confidence,omitempty"`
	PressureLabel string       `bson:"pressureLabel,omitempty" json:"pressureLabel,omitempty"`
}

// PressureLimited flags offers whose availability is changing fast enough
// that clients should nudge the traveler. Absent a label, clients render
// the inventory as stable.
const PressureLimited = "LIMITED"

// SupportRisk estimates how likely a booking is to need customer-support
// intervention. It is derived per ranking pass and never cached: its inputs
// (time of day, point in trip) change between requests for the same property.
type SupportRisk struct {
	RiskScore   float64  `json:"riskScore"`
	Label       string   `json:"label"` // LOW, MEDIUM or HIGH
	ReasonCodes []string `json:"reasonCodes"`
}

// Risk labels, thresholded on the composite score.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)
