package pricehistory

import (
	"context"
	"fmt"

	snapshotsRepo "roadstay/database/repository/snapshots"
	"roadstay/models"
)

// TrendService reads a property's price history back for display.
type TrendService struct {
	Repo snapshotsRepo.RateSnapshotRepository
}

// Trend returns the property's observed rates ascending by capture time.
func (s *TrendService) Trend(ctx context.Context, hotelID string) ([]models.TrendPoint, error) {
	points, err := s.Repo.Trend(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load price trend for %s: %w", hotelID, err)
	}
	return points, nil
}
