package handlers

import (
	"net/http"

	"roadstay/models"
	"roadstay/services/booking"
	"roadstay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the pay-at-property reservation endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler builds a BookingHandler.
func NewBookingHandler(service booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.Booking
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.GuestFirstName == "" || input.GuestLastName == "" || input.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "guest name and email are required", "")
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.Logger.Error("booking failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to book", err.Error())
		return
	}

	c.JSON(http.StatusOK, created)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID := c.Param("id")
	found, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, found)
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Service.CancelBooking(c.Request.Context(), bookingID); err != nil {
		h.Logger.Error("cancellation failed", zap.String("bookingID", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
