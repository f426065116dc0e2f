package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAmadeusTestServer serves the token endpoint plus the given handlers,
// asserting every API call carries the issued bearer token.
func newAmadeusTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *AmadeusAdapter {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":1800}`)
	})
	for path, handler := range handlers {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			handler(w, r)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &AmadeusAdapter{
		clientID:     "id",
		clientSecret: "secret",
		baseURL:      server.URL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func hotelListResponse(count int) string {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, fmt.Sprintf(`{"hotelId":"HTL%d"}`, i))
	}
	return `{"data":[` + strings.Join(ids, ",") + `]}`
}

func TestAmadeusSearchNormalizesOffers(t *testing.T) {
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-geocode": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "50", r.URL.Query().Get("radius"))
			assert.Equal(t, "MILE", r.URL.Query().Get("radiusUnit"))
			fmt.Fprint(w, hotelListResponse(2))
		},
		"/v3/shopping/hotel-offers": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "HTL0,HTL1", r.URL.Query().Get("hotelIds"))
			assert.Equal(t, "true", r.URL.Query().Get("bestRateOnly"))
			fmt.Fprint(w, `{"data":[{
				"hotel":{"hotelId":"HTL0","name":"Interstate Lodge","latitude":36.1,"longitude":-79.2,
					"address":{"lines":["1 Exit Rd"],"cityName":"Greensboro"}},
				"offers":[{"id":"OFF1",
					"room":{"description":{"text":"King Room"}},
					"price":{"total":"104.50","currency":"USD"},
					"policies":{"cancellation":{"description":{"text":"Cancel by 6 PM."}}}}]
			}]}`)
		},
	})

	offers, err := adapter.Search(context.Background(), SearchParams{
		Lat: 36.0, Lng: -79.0, RadiusMiles: 50,
		CheckIn: "2026-08-28", CheckOut: "2026-08-29", Guests: 2,
	})

	require.NoError(t, err)
	require.Len(t, offers, 1)
	offer := offers[0]
	assert.Equal(t, "HTL0", offer.HotelID)
	assert.Equal(t, "Interstate Lodge", offer.HotelName)
	assert.Equal(t, "1 Exit Rd, Greensboro", offer.Address)

	require.Len(t, offer.Rates, 1)
	rate := offer.Rates[0]
	assert.Equal(t, "OFF1", rate.RateID)
	assert.Equal(t, "King Room", rate.RoomName)
	assert.Equal(t, 104.50, rate.TotalAmount)
	assert.Equal(t, "USD", rate.Currency)
	assert.Equal(t, "PAY_AT_PROPERTY", rate.PayType)
	assert.Equal(t, "Cancel by 6 PM.", rate.CancellationPolicyText)
	assert.JSONEq(t, `{"offerId":"OFF1"}`, string(rate.SupplierPayload))
}

func TestAmadeusSearchCapsHotelIDsAtTen(t *testing.T) {
	var requestedIDs string
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-geocode": func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, hotelListResponse(25))
		},
		"/v3/shopping/hotel-offers": func(w http.ResponseWriter, r *http.Request) {
			requestedIDs = r.URL.Query().Get("hotelIds")
			fmt.Fprint(w, `{"data":[]}`)
		},
	})

	_, err := adapter.Search(context.Background(), SearchParams{Lat: 36, Lng: -79, RadiusMiles: 50, Guests: 2})

	require.NoError(t, err)
	assert.Len(t, strings.Split(requestedIDs, ","), 10)
}

func TestAmadeusSearchEmptyAreaSkipsOffersCall(t *testing.T) {
	offersCalled := false
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-geocode": func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"data":[]}`)
		},
		"/v3/shopping/hotel-offers": func(w http.ResponseWriter, _ *http.Request) {
			offersCalled = true
			fmt.Fprint(w, `{"data":[]}`)
		},
	})

	offers, err := adapter.Search(context.Background(), SearchParams{Lat: 36, Lng: -79, RadiusMiles: 50})

	require.NoError(t, err)
	assert.Empty(t, offers)
	assert.False(t, offersCalled)
}

func TestAmadeusSearchSurfacesUpstreamError(t *testing.T) {
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-geocode": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"errors":[{"title":"rate limit"}]}`, http.StatusTooManyRequests)
		},
	})

	_, err := adapter.Search(context.Background(), SearchParams{Lat: 36, Lng: -79, RadiusMiles: 50})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAmadeusTokenIsReusedUntilExpiry(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		tokenCalls++
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":1800}`)
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-geocode", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	adapter := &AmadeusAdapter{
		clientID: "id", clientSecret: "secret",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	for i := 0; i < 3; i++ {
		_, err := adapter.Search(context.Background(), SearchParams{Lat: 36, Lng: -79, RadiusMiles: 50})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, tokenCalls)
}

func TestAmadeusQuoteRoundTrip(t *testing.T) {
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v3/shopping/hotel-offers/OFF1": func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"data":{"offers":[{"id":"OFF1","price":{"total":"112.00"}}]}}`)
		},
	})

	result, err := adapter.Quote(context.Background(), json.RawMessage(`{"offerId":"OFF1"}`))

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 112.00, result.FinalTotal)
	assert.JSONEq(t, `{"offerId":"OFF1"}`, string(result.UpdatedPayload))
}

func TestAmadeusQuoteInvalidPayload(t *testing.T) {
	adapter := newAmadeusTestServer(t, nil)

	result, err := adapter.Quote(context.Background(), json.RawMessage(`{}`))

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "invalid rate payload", result.Error)
}

func TestAmadeusBook(t *testing.T) {
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/booking/hotel-bookings": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			var body struct {
				Data struct {
					OfferID string `json:"offerId"`
					Guests  []struct {
						Name struct {
							FirstName string `json:"firstName"`
						} `json:"name"`
					} `json:"guests"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "OFF1", body.Data.OfferID)
			require.Len(t, body.Data.Guests, 1)
			assert.Equal(t, "Ada", body.Data.Guests[0].Name.FirstName)
			fmt.Fprint(w, `{"data":[{"id":"AMB-1","self":"https://test.api.amadeus.com/v1/booking/hotel-bookings/CONF-42"}]}`)
		},
	})

	result, err := adapter.Book(context.Background(), BookingParams{
		GuestFirstName: "Ada",
		GuestLastName:  "Byrne",
		Email:          "ada@example.com",
		RatePayload:    json.RawMessage(`{"offerId":"OFF1"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "AMB-1", result.BookingID)
	assert.Equal(t, "CONF-42", result.ConfirmationNumber)
}

func TestAmadeusCityCoordinates(t *testing.T) {
	adapter := newAmadeusTestServer(t, map[string]http.HandlerFunc{
		"/v1/reference-data/locations": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "CITY", r.URL.Query().Get("subType"))
			if r.URL.Query().Get("keyword") == "Atlanta" {
				fmt.Fprint(w, `{"data":[{"geoCode":{"latitude":33.749,"longitude":-84.388}}]}`)
				return
			}
			fmt.Fprint(w, `{"data":[]}`)
		},
	})

	coords, err := adapter.CityCoordinates(context.Background(), "Atlanta")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 33.749, coords.Lat)
	assert.Equal(t, -84.388, coords.Lng)

	coords, err = adapter.CityCoordinates(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.Nil(t, coords)
}
