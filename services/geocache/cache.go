// Package geocache caches supplier-pure offer lists by geographic cell so
// nearby searches within the TTL window skip the upstream call entirely.
package geocache

import (
	"context"
	"fmt"
	"time"

	"roadstay/models"

	"github.com/mmcloughlin/geohash"
)

// cellPrecision yields cells of roughly 1.2 km x 0.6 km: coarse enough for
// cache reuse across nearby searches, fine enough to keep distinct
// micro-markets apart.
const cellPrecision = 6

// DefaultTTL reflects how fast roadside rates move.
const DefaultTTL = 10 * time.Minute

// Key identifies one cached offer set.
type Key struct {
	Cell     string
	CheckIn  string // ISO date
	CheckOut string // ISO date
	Guests   int
}

// CellOf encodes a point into its fixed-precision geohash cell.
func CellOf(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, cellPrecision)
}

// NewKey builds the cache key for a point and stay.
func NewKey(lat, lng float64, checkIn, checkOut string, guests int) Key {
	return Key{Cell: CellOf(lat, lng), CheckIn: checkIn, CheckOut: checkOut, Guests: guests}
}

func (k Key) String() string {
	return fmt.Sprintf("offers:%s:%s:%s:%d", k.Cell, k.CheckIn, k.CheckOut, k.Guests)
}

// OfferCache is the geo-cell offer cache. Entries are write-once immutable
// payloads, so last-writer-wins under concurrent Put is acceptable. A Get must
// never return an expired entry, whether or not it has been physically deleted.
type OfferCache interface {
	Get(ctx context.Context, key Key) ([]models.Offer, bool, error)
	Put(ctx context.Context, key Key, offers []models.Offer, ttl time.Duration) error
}
