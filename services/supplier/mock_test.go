package supplier

import (
	"context"
	"encoding/json"
	"testing"

	"roadstay/config"
	"roadstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCityLookupNormalizesInput(t *testing.T) {
	m := NewMockAdapter()

	for _, name := range []string{"Richmond", "richmond", "  RICHMOND  ", "Richmond, VA"} {
		coords, err := m.CityCoordinates(context.Background(), name)
		require.NoError(t, err, name)
		require.NotNil(t, coords, name)
		assert.Equal(t, 37.5407, coords.Lat)
	}

	coords, err := m.CityCoordinates(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.Nil(t, coords, "unknown cities resolve to nothing, not an error")
}

func TestMockSearchInventory(t *testing.T) {
	offers, err := NewMockAdapter().Search(context.Background(), SearchParams{Lat: 37.5, Lng: -77.4, RadiusMiles: 50})

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "mock-1", offers[0].HotelID)
	require.NotEmpty(t, offers[0].Rates)
	assert.Equal(t, models.PayTypeAtProperty, offers[0].Rates[0].PayType)
	assert.NotEmpty(t, offers[0].Rates[0].SupplierPayload)
}

func TestMockBookRequiresEmail(t *testing.T) {
	m := NewMockAdapter()

	_, err := m.Book(context.Background(), BookingParams{GuestFirstName: "Ada"})
	require.Error(t, err)

	result, err := m.Book(context.Background(), BookingParams{
		GuestFirstName: "Ada", GuestLastName: "Byrne", Email: "ada@example.com",
		RatePayload: json.RawMessage(`{"token":"mock-token-1"}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.NotEmpty(t, result.ConfirmationNumber)
}

func TestFromConfigFallsBackToMock(t *testing.T) {
	orig := config.AppConfig
	t.Cleanup(func() { config.AppConfig = orig })

	config.AppConfig.Supplier = ""
	assert.Equal(t, "mock", FromConfig().Name())

	config.AppConfig.Supplier = "amadeus"
	config.AppConfig.AmadeusClientID = ""
	assert.Equal(t, "mock", FromConfig().Name(), "credential-less amadeus falls back")

	config.AppConfig.AmadeusClientID = "id"
	config.AppConfig.AmadeusClientSecret = "secret"
	assert.Equal(t, "amadeus", FromConfig().Name())
}
