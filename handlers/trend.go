package handlers

import (
	"net/http"

	"roadstay/services/pricehistory"
	"roadstay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrendHandler exposes per-property price history.
type TrendHandler struct {
	Service *pricehistory.TrendService
	Logger  *zap.Logger
}

// NewTrendHandler builds a TrendHandler.
func NewTrendHandler(service *pricehistory.TrendService, logger *zap.Logger) *TrendHandler {
	return &TrendHandler{Service: service, Logger: logger}
}

// PriceTrend handles GET /api/hotels/:id/trend.
func (h *TrendHandler) PriceTrend(c *gin.Context) {
	hotelID := c.Param("id")
	if hotelID == "" {
		utils.JSONError(c, http.StatusBadRequest, "hotel id is required", "")
		return
	}

	points, err := h.Service.Trend(c.Request.Context(), hotelID)
	if err != nil {
		h.Logger.Error("price trend lookup failed", zap.String("hotelID", hotelID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load price trend", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hotelId": hotelID, "trend": points})
}
