package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roadstay/models"
	"roadstay/services/geocache"
	"roadstay/services/pricehistory"
	"roadstay/services/risk"
	"roadstay/services/search"
	"roadstay/services/supplier"
	"roadstay/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type neutralSignals struct{}

func (neutralSignals) HistoricSignals(context.Context, string) risk.Signals {
	return risk.NeutralSignals()
}

// flakySupplier wraps the mock supplier and fails searches near one latitude.
type flakySupplier struct {
	*supplier.MockAdapter
	failNearLat float64
}

func (f *flakySupplier) Search(ctx context.Context, p supplier.SearchParams) ([]models.Offer, error) {
	if math.Abs(p.Lat-f.failNearLat) < 0.01 {
		return nil, errors.New("upstream timeout")
	}
	return f.MockAdapter.Search(ctx, p)
}

func newSearchRouter(adapter supplier.Adapter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := search.NewDefaultSearchService(
		adapter,
		geocache.NewMemoryOfferCache(),
		risk.NewRanker(neutralSignals{}),
		pricehistory.NopRecorder{},
		10*time.Minute,
	)
	svc.Now = func() time.Time {
		return time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC) // late night
	}

	h := NewSearchHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/api/route-hotels", h.RouteSearch)
	r.POST("/api/search", h.Search)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouteSearchEndToEnd(t *testing.T) {
	r := newSearchRouter(supplier.NewMockAdapter())

	w := doJSON(t, r, http.MethodPost, "/api/route-hotels", models.RouteSearchRequest{
		Origin:      "New York",
		Destination: "Miami",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Southbound", resp.Direction)
	assert.Greater(t, resp.DistanceMiles, 1000.0)
	assert.InDelta(t, resp.DistanceMiles/60, resp.DurationHours, 1e-9)

	require.Len(t, resp.Stops, 3)
	assert.Equal(t, "1/4 Way", resp.Stops[0].Label)
	assert.Equal(t, "Midpoint", resp.Stops[1].Label)
	assert.Equal(t, "3/4 Way", resp.Stops[2].Label)

	for i, stop := range resp.Stops {
		assert.Equal(t, i, stop.StopIndex)
		require.Equal(t, models.StopOK, stop.Status)
		require.NotNil(t, stop.BestOffer)
		assert.Equal(t, "mock-1", stop.BestOffer.HotelID, "cheapest offer is the best pick")
		require.NotNil(t, stop.BestOffer.SupportRisk)
		for _, offer := range stop.Offers {
			assert.NotNil(t, offer.SupportRisk)
		}
	}
}

func TestRouteSearchIsolatesOneFailedStop(t *testing.T) {
	// New York -> Miami midpoint latitude.
	midLat := 40.7128 + (25.7617-40.7128)*0.5
	r := newSearchRouter(&flakySupplier{MockAdapter: supplier.NewMockAdapter(), failNearLat: midLat})

	w := doJSON(t, r, http.MethodPost, "/api/route-hotels", models.RouteSearchRequest{
		Origin:      "New York",
		Destination: "Miami",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Stops, 3)
	assert.Equal(t, models.StopOK, resp.Stops[0].Status)
	assert.Equal(t, models.StopError, resp.Stops[1].Status)
	assert.Contains(t, resp.Stops[1].Error, "upstream timeout")
	assert.Equal(t, models.StopOK, resp.Stops[2].Status)
}

func TestRouteSearchUnknownCityIs404(t *testing.T) {
	r := newSearchRouter(supplier.NewMockAdapter())

	w := doJSON(t, r, http.MethodPost, "/api/route-hotels", models.RouteSearchRequest{
		Origin:      "New York",
		Destination: "Nowhereville",
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "could not find one or both cities", resp.Message)
	assert.Contains(t, resp.Details, "Nowhereville")
}

func TestRouteSearchRequiresBothEndpoints(t *testing.T) {
	r := newSearchRouter(supplier.NewMockAdapter())

	w := doJSON(t, r, http.MethodPost, "/api/route-hotels", models.RouteSearchRequest{
		Origin: "New York",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointReportsCacheState(t *testing.T) {
	r := newSearchRouter(supplier.NewMockAdapter())
	req := models.SearchRequest{Lat: 33.749, Lng: -84.388, CheckIn: "2026-08-28", CheckOut: "2026-08-29", Guests: 2}

	var first struct {
		Offers    []models.Offer `json:"offers"`
		FromCache bool           `json:"fromCache"`
	}
	w := doJSON(t, r, http.MethodPost, "/api/search", req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.False(t, first.FromCache)
	require.Len(t, first.Offers, 2)
	assert.Equal(t, "mock-1", first.Offers[0].HotelID)

	var second struct {
		Offers    []models.Offer `json:"offers"`
		FromCache bool           `json:"fromCache"`
	}
	w = doJSON(t, r, http.MethodPost, "/api/search", req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.FromCache)
	assert.Len(t, second.Offers, 2)
}
