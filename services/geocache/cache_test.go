package geocache

import (
	"context"
	"testing"
	"time"

	"roadstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOfIsStableAndNeighborhoodScoped(t *testing.T) {
	atlanta := CellOf(33.749, -84.388)
	assert.Len(t, atlanta, cellPrecision)
	assert.Equal(t, atlanta, CellOf(33.749, -84.388))

	// A point a couple hundred meters away shares the cell; a different city
	// never does.
	assert.Equal(t, atlanta, CellOf(33.7495, -84.3882))
	assert.NotEqual(t, atlanta, CellOf(25.7617, -80.1918))
}

func TestKeySeparatesStayParameters(t *testing.T) {
	base := NewKey(33.749, -84.388, "2026-08-28", "2026-08-29", 2)
	assert.Equal(t, "offers:"+base.Cell+":2026-08-28:2026-08-29:2", base.String())

	differentDates := NewKey(33.749, -84.388, "2026-08-29", "2026-08-30", 2)
	differentGuests := NewKey(33.749, -84.388, "2026-08-28", "2026-08-29", 4)
	assert.NotEqual(t, base.String(), differentDates.String())
	assert.NotEqual(t, base.String(), differentGuests.String())
}

func TestMemoryCacheHonorsTTL(t *testing.T) {
	current := time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)
	cache := NewMemoryOfferCache()
	cache.now = func() time.Time { return current }

	key := NewKey(33.749, -84.388, "2026-08-28", "2026-08-29", 2)
	offers := []models.Offer{{HotelID: "h1", Rates: []models.Rate{{RateID: "r1", TotalAmount: 95}}}}
	require.NoError(t, cache.Put(context.Background(), key, offers, 10*time.Minute))

	current = current.Add(9 * time.Minute)
	got, hit, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, hit, "entry is live inside the TTL window")
	assert.Equal(t, offers, got)

	current = current.Add(2 * time.Minute)
	_, hit, err = cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, hit, "entry is absent once the TTL elapses")
}

func TestMemoryCacheExpiryIsExactAtBoundary(t *testing.T) {
	current := time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)
	cache := NewMemoryOfferCache()
	cache.now = func() time.Time { return current }

	key := NewKey(40.7128, -74.006, "2026-08-28", "2026-08-29", 1)
	require.NoError(t, cache.Put(context.Background(), key, []models.Offer{{HotelID: "h"}}, 10*time.Minute))

	current = current.Add(10 * time.Minute)
	_, hit, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheZeroTTLUsesDefault(t *testing.T) {
	current := time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)
	cache := NewMemoryOfferCache()
	cache.now = func() time.Time { return current }

	key := NewKey(40.7128, -74.006, "2026-08-28", "2026-08-29", 2)
	require.NoError(t, cache.Put(context.Background(), key, []models.Offer{{HotelID: "h"}}, 0))

	current = current.Add(DefaultTTL - time.Minute)
	_, hit, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestMemoryCacheMissOnUnknownKey(t *testing.T) {
	cache := NewMemoryOfferCache()
	_, hit, err := cache.Get(context.Background(), NewKey(1, 1, "2026-08-28", "2026-08-29", 2))
	require.NoError(t, err)
	assert.False(t, hit)
}
