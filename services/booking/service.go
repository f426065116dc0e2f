// Package booking is the thin pay-at-property reservation flow around the
// supplier: persist a draft, hand off to the upstream, record the outcome.
package booking

import (
	"context"
	"fmt"

	bookingsRepo "roadstay/database/repository/bookings"
	outcomesRepo "roadstay/database/repository/outcomes"
	"roadstay/models"
	"roadstay/services/supplier"
	"roadstay/utils"

	"go.uber.org/zap"
)

// BookingService creates and cancels reservations.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.Booking) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingsRepo.BookingRepository
	Outcomes outcomesRepo.SupportOutcomeRepository
	Supplier supplier.Adapter
}

// CreateBooking walks DRAFT -> PENDING_SUPPLIER -> CONFIRMED/FAILED around
// the supplier call. The booking outcome also feeds the risk engine's
// historical signals.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.Booking) (*models.Booking, error) {
	logger := utils.GetLogger()

	input.Status = models.BookingDraft
	input.PayType = models.PayTypeAtProperty
	input.Supplier = s.Supplier.Name()

	id, err := s.Repo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking draft: %w", err)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.BookingPendingSupplier); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	result, err := s.Supplier.Book(ctx, supplier.BookingParams{
		GuestFirstName: input.GuestFirstName,
		GuestLastName:  input.GuestLastName,
		Email:          input.Email,
		Phone:          input.Phone,
		RatePayload:    input.RatePayload,
	})
	if err != nil {
		if statusErr := s.Repo.UpdateStatus(ctx, id, models.BookingFailed); statusErr != nil {
			logger.Error("failed to mark booking FAILED",
				zap.String("bookingID", id), zap.Error(statusErr))
		}
		s.recordOutcome(ctx, input.SupplierHotelID, false)
		return nil, fmt.Errorf("supplier booking failed: %w", err)
	}

	if err := s.Repo.SetConfirmation(ctx, id, result.BookingID, result.ConfirmationNumber); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	s.recordOutcome(ctx, input.SupplierHotelID, true)

	return s.Repo.GetByID(ctx, id)
}

// CancelBooking requests cancellation upstream and records the state change.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("booking not found: %w", err)
	}

	if err := s.Repo.UpdateStatus(ctx, bookingID, models.BookingCancelRequested); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if err := s.Supplier.Cancel(ctx, booking.SupplierBookingID); err != nil {
		return fmt.Errorf("supplier cancellation failed: %w", err)
	}
	return s.Repo.UpdateStatus(ctx, bookingID, models.BookingCanceled)
}

// GetBooking returns a booking by ID.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}

func (s *DefaultBookingService) recordOutcome(ctx context.Context, hotelID string, confirmed bool) {
	if s.Outcomes == nil || hotelID == "" {
		return
	}
	err := s.Outcomes.Record(ctx, models.SupportOutcome{
		HotelID:       hotelID,
		Confirmed:     confirmed,
		BookingFailed: !confirmed,
	})
	if err != nil {
		utils.GetLogger().Warn("failed to record booking outcome",
			zap.String("hotelID", hotelID), zap.Error(err))
	}
}
