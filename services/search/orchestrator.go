package search

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"roadstay/models"
	"roadstay/services/geocache"
	"roadstay/services/risk"
	"roadstay/services/route"
	"roadstay/utils"

	"go.uber.org/zap"
)

const (
	// maxRadiusMiles caps the single-step radius escalation. One greedy
	// widening, never more: completeness is traded for bounded latency.
	maxRadiusMiles = 100.0

	defaultRadiusMiles = 50.0
	defaultGuests      = 2
	waypointCount      = 3

	// topOffersPerStop bounds how many ranked offers a stop carries beyond
	// its best one.
	topOffersPerStop = 3
)

// SearchRoute decomposes the trip into waypoints and searches them all
// concurrently. Only a geocoding failure fails the whole request; everything
// else degrades to a partial, still-useful response.
func (s *DefaultSearchService) SearchRoute(ctx context.Context, req models.RouteSearchRequest) (*models.RouteResponse, error) {
	origin, err := s.Router.Resolve(ctx, req.Origin, req.OriginCoords)
	if err != nil {
		return nil, err
	}
	destination, err := s.Router.Resolve(ctx, req.Destination, req.DestinationCoords)
	if err != nil {
		return nil, err
	}

	radius := s.searchRadius(req.RadiusMiles)
	guests := req.Guests
	if guests <= 0 {
		guests = defaultGuests
	}
	checkIn, checkOut := s.stayDates(req.CheckIn, req.CheckOut)

	waypoints := route.Waypoints(origin, destination, waypointCount, radius)
	stops := s.searchAllWaypoints(ctx, waypoints, checkIn, checkOut, guests)

	distance := route.TripDistance(origin, destination)
	return &models.RouteResponse{
		Origin:        origin,
		Destination:   destination,
		DistanceMiles: distance,
		DurationHours: route.TripDuration(distance),
		Direction:     route.Direction(origin, destination),
		Stops:         stops,
	}, nil
}

// searchAllWaypoints runs every waypoint as an independent concurrent unit
// and always yields one indexed StopResult per waypoint. No unit's failure
// cancels another's; the join waits for all of them to settle.
func (s *DefaultSearchService) searchAllWaypoints(ctx context.Context, waypoints []models.Waypoint, checkIn, checkOut string, guests int) []models.StopResult {
	results := make([]models.StopResult, len(waypoints))
	var wg sync.WaitGroup

	for i, wp := range waypoints {
		wg.Add(1)
		go func(i int, wp models.Waypoint) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					utils.GetLogger().Error("waypoint search panicked",
						zap.Int("stopIndex", i), zap.Any("panic", r))
					results[i] = models.StopResult{
						StopIndex: i,
						Status:    models.StopError,
						Label:     wp.Label,
						Waypoint:  wp,
						Error:     fmt.Sprintf("waypoint search failed: %v", r),
					}
				}
			}()
			results[i] = s.searchWaypoint(ctx, i, wp, checkIn, checkOut, guests)
		}(i, wp)
	}

	wg.Wait()
	return results
}

// searchWaypoint is the per-stop pipeline: cache, supplier with one radius
// escalation, cache write, then risk ranking.
func (s *DefaultSearchService) searchWaypoint(ctx context.Context, index int, wp models.Waypoint, checkIn, checkOut string, guests int) models.StopResult {
	logger := utils.GetLogger()
	key := geocache.NewKey(wp.Lat, wp.Lng, checkIn, checkOut, guests)

	offers, hit, err := s.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("offer cache read failed", zap.String("key", key.String()), zap.Error(err))
		hit = false
	}

	radiusUsed := wp.RadiusMiles
	if !hit {
		offers, radiusUsed, err = s.fetchWithEscalation(ctx, wp, checkIn, checkOut, guests)
		if err != nil {
			return models.StopResult{
				StopIndex: index,
				Status:    models.StopError,
				Label:     wp.Label,
				Waypoint:  wp,
				Error:     err.Error(),
			}
		}
		if len(offers) > 0 {
			// Cache the raw supplier offers before any enrichment, so the
			// entry stays reusable for other ranking contexts.
			if err := s.Cache.Put(ctx, key, offers, s.CacheTTL); err != nil {
				logger.Warn("offer cache write failed", zap.String("key", key.String()), zap.Error(err))
			}
			s.Recorder.Record(offers, key.Cell, s.Supplier.Name())
		}
	}

	wp.RadiusMiles = radiusUsed
	if len(offers) == 0 {
		return models.StopResult{
			StopIndex: index,
			Status:    models.StopNoOffers,
			Label:     wp.Label,
			Waypoint:  wp,
		}
	}

	ranked := s.Ranker.Rank(ctx, offers, risk.IsLateNight(s.Now()), true)
	best := bestOffer(offers, ranked)
	if len(ranked) > topOffersPerStop {
		ranked = ranked[:topOffersPerStop]
	}

	return models.StopResult{
		StopIndex:  index,
		Status:     models.StopOK,
		Label:      wp.Label,
		Waypoint:   wp,
		RadiusUsed: radiusUsed,
		BestOffer:  best,
		Offers:     ranked,
	}
}

// fetchWithEscalation queries the supplier at the waypoint's radius and, on
// an empty result, retries exactly once at min(radius*2, maxRadiusMiles).
func (s *DefaultSearchService) fetchWithEscalation(ctx context.Context, wp models.Waypoint, checkIn, checkOut string, guests int) ([]models.Offer, float64, error) {
	offers, err := s.supplierSearch(ctx, wp, wp.RadiusMiles, checkIn, checkOut, guests)
	if err != nil {
		return nil, wp.RadiusMiles, err
	}
	if len(offers) > 0 {
		return offers, wp.RadiusMiles, nil
	}

	widened := math.Min(wp.RadiusMiles*2, maxRadiusMiles)
	offers, err = s.supplierSearch(ctx, wp, widened, checkIn, checkOut, guests)
	if err != nil {
		return nil, widened, err
	}
	return offers, widened, nil
}

// bestOffer selects the cheapest offer by first-rate total, ties broken by
// original supplier order, and returns its risk-enriched counterpart.
func bestOffer(original, ranked []models.Offer) *models.Offer {
	bestIdx := -1
	for i, o := range original {
		if len(o.Rates) == 0 {
			continue
		}
		if bestIdx < 0 || o.Rates[0].TotalAmount < original[bestIdx].Rates[0].TotalAmount {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil
	}
	for i := range ranked {
		if ranked[i].HotelID == original[bestIdx].HotelID {
			return &ranked[i]
		}
	}
	best := original[bestIdx]
	return &best
}

// searchRadius resolves the radius to use: request, then configured default,
// then the built-in one.
func (s *DefaultSearchService) searchRadius(requested float64) float64 {
	if requested > 0 {
		return requested
	}
	if s.DefaultRadius > 0 {
		return s.DefaultRadius
	}
	return defaultRadiusMiles
}

// stayDates fills missing dates with tonight/tomorrow, the roadside default.
func (s *DefaultSearchService) stayDates(checkIn, checkOut string) (string, string) {
	now := s.Now()
	if checkIn == "" {
		checkIn = now.Format("2006-01-02")
	}
	if checkOut == "" {
		ci, err := time.Parse("2006-01-02", checkIn)
		if err != nil {
			ci = now
		}
		checkOut = ci.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return checkIn, checkOut
}
