package search

import (
	"context"
	"time"

	"roadstay/models"
	"roadstay/services/geocache"
	"roadstay/services/pricehistory"
	"roadstay/services/risk"
	"roadstay/services/route"
	"roadstay/services/supplier"
)

// Service is the search surface of the engine: route-wide waypoint searches
// and single-point searches.
type Service interface {
	SearchRoute(ctx context.Context, req models.RouteSearchRequest) (*models.RouteResponse, error)
	Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, bool, error)
}

// DefaultSearchService implements Service. All collaborators are injected so
// tests can substitute doubles without global state.
type DefaultSearchService struct {
	Supplier supplier.Adapter
	Cache    geocache.OfferCache
	Router   *route.Router
	Ranker   *risk.Ranker
	Recorder pricehistory.Recorder

	// CacheTTL bounds how long a fetched offer set is reused; zero means the
	// geocache default.
	CacheTTL time.Duration

	// DefaultRadius is the per-waypoint search radius when a request does not
	// set one; zero means the built-in default.
	DefaultRadius float64

	// Now is the clock behind the late-night window; tests override it.
	Now func() time.Time
}

// NewDefaultSearchService wires the orchestrator.
func NewDefaultSearchService(
	sup supplier.Adapter,
	cache geocache.OfferCache,
	ranker *risk.Ranker,
	recorder pricehistory.Recorder,
	cacheTTL time.Duration,
) *DefaultSearchService {
	return &DefaultSearchService{
		Supplier: sup,
		Cache:    cache,
		Router:   route.NewRouter(sup),
		Ranker:   ranker,
		Recorder: recorder,
		CacheTTL: cacheTTL,
		Now:      time.Now,
	}
}
