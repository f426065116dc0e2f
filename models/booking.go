package models

import (
	"encoding/json"
	"time"
)

// Booking statuses, in lifecycle order.
const (
	BookingDraft           = "DRAFT"
	BookingPendingSupplier = "PENDING_SUPPLIER"
	BookingConfirmed       = "CONFIRMED"
	BookingFailed          = "FAILED"
	BookingCancelRequested = "CANCEL_REQUESTED"
	BookingCanceled        = "CANCELED"
)

// Booking is a persisted pay-at-property reservation.
type Booking struct {
	ID                 string          `bson:"id" json:"id"`
	Status             string          `bson:"status" json:"status"`
	PayType            string          `bson:"payType" json:"payType"`
	Supplier           string          `bson:"supplier" json:"supplier"`
	SupplierBookingID  string          `bson:"supplierBookingId,omitempty" json:"supplierBookingId,omitempty"`
	ConfirmationNumber string          `bson:"confirmationNumber,omitempty" json:"confirmationNumber,omitempty"`
	SupplierHotelID    string          `bson:"supplierHotelId" json:"supplierHotelId"`
	HotelName          string          `bson:"hotelName" json:"hotelName"`
	GuestFirstName     string          `bson:"guestFirstName" json:"guestFirstName"`
	GuestLastName      string          `bson:"guestLastName" json:"guestLastName"`
	Email              string          `bson:"email" json:"email"`
	Phone              string          `bson:"phone,omitempty" json:"phone,omitempty"`
	CheckIn            string          `bson:"checkIn" json:"checkIn"`
	CheckOut           string          `bson:"checkOut" json:"checkOut"`
	Guests             int             `bson:"guests" json:"guests"`
	TotalAmount        float64         `bson:"totalAmount" json:"totalAmount"`
	Currency           string          `bson:"currency" json:"currency"`
	RateID             string          `bson:"rateId" json:"rateId"`
	RatePayload        json.RawMessage `bson:"ratePayload,omitempty" json:"ratePayload,omitempty"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updatedAt"`
}
