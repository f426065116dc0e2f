package handlers

import (
	"errors"
	"net/http"

	"roadstay/models"
	"roadstay/services/route"
	"roadstay/services/search"
	"roadstay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the route and single-point search endpoints.
type SearchHandler struct {
	Service search.Service
	Logger  *zap.Logger
}

// NewSearchHandler builds a SearchHandler.
func NewSearchHandler(service search.Service, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Service: service, Logger: logger}
}

// RouteSearch handles POST /api/route-hotels.
func (h *SearchHandler) RouteSearch(c *gin.Context) {
	var req models.RouteSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Origin == "" && req.OriginCoords == nil {
		utils.JSONError(c, http.StatusBadRequest, "origin and destination are required", "")
		return
	}
	if req.Destination == "" && req.DestinationCoords == nil {
		utils.JSONError(c, http.StatusBadRequest, "origin and destination are required", "")
		return
	}

	resp, err := h.Service.SearchRoute(c.Request.Context(), req)
	if err != nil {
		var notFound *route.NotFoundError
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "could not find one or both cities", notFound.Error())
			return
		}
		h.Logger.Error("route search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to find route hotels", "")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	offers, fromCache, err := h.Service.Search(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to search", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "fromCache": fromCache})
}
