package search

import (
	"context"
	"fmt"

	"roadstay/models"
	"roadstay/services/geocache"
	"roadstay/services/risk"
	"roadstay/services/supplier"
	"roadstay/utils"

	"go.uber.org/zap"
)

// Search is the single-point flow: cache first, then the supplier, with the
// cache write and price snapshot off the critical path. The bool reports
// whether the offers came from cache.
func (s *DefaultSearchService) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, bool, error) {
	radius := s.searchRadius(req.RadiusMiles)
	guests := req.Guests
	if guests <= 0 {
		guests = defaultGuests
	}
	checkIn, checkOut := s.stayDates(req.CheckIn, req.CheckOut)

	key := geocache.NewKey(req.Lat, req.Lng, checkIn, checkOut, guests)
	if cached, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		return s.Ranker.Rank(ctx, cached, risk.IsLateNight(s.Now()), false), true, nil
	} else if err != nil {
		utils.GetLogger().Warn("offer cache read failed", zap.String("key", key.String()), zap.Error(err))
	}

	offers, err := s.Supplier.Search(ctx, supplier.SearchParams{
		Lat:         req.Lat,
		Lng:         req.Lng,
		RadiusMiles: radius,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
	})
	if err != nil {
		return nil, false, fmt.Errorf("supplier search failed: %w", err)
	}

	if len(offers) > 0 {
		if err := s.Cache.Put(ctx, key, offers, s.CacheTTL); err != nil {
			utils.GetLogger().Warn("offer cache write failed", zap.String("key", key.String()), zap.Error(err))
		}
		s.Recorder.Record(offers, key.Cell, s.Supplier.Name())
	}

	return s.Ranker.Rank(ctx, offers, risk.IsLateNight(s.Now()), false), false, nil
}

func (s *DefaultSearchService) supplierSearch(ctx context.Context, wp models.Waypoint, radius float64, checkIn, checkOut string, guests int) ([]models.Offer, error) {
	return s.Supplier.Search(ctx, supplier.SearchParams{
		Lat:         wp.Lat,
		Lng:         wp.Lng,
		RadiusMiles: radius,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
	})
}
