package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the wired handlers for route registration.
type HandlerBundle struct {
	// Search endpoints.
	RouteSearch gin.HandlerFunc
	Search      gin.HandlerFunc

	// Price history endpoints.
	PriceTrend gin.HandlerFunc

	// Booking endpoints.
	CreateBooking gin.HandlerFunc
	GetBooking    gin.HandlerFunc
	CancelBooking gin.HandlerFunc
}
