package risk

import (
	"context"
	"time"

	outcomesRepo "roadstay/database/repository/outcomes"
	"roadstay/utils"

	"go.uber.org/zap"
)

// Signals are the per-property reliability rates the scorer consumes.
type Signals struct {
	ConfirmationConfidence float64
	SupplyPressure         float64
	QuoteFailRate          float64
	BookingFailRate        float64
}

// NeutralSignals are the conservative defaults for properties with no
// recorded history, or when the signal lookup itself fails. Scoring must
// degrade, never fail, on missing inputs.
func NeutralSignals() Signals {
	return Signals{
		ConfirmationConfidence: 0.8,
		SupplyPressure:         0,
		QuoteFailRate:          0,
		BookingFailRate:        0,
	}
}

// SignalSource looks up historical reliability signals for a property.
type SignalSource interface {
	HistoricSignals(ctx context.Context, hotelID string) Signals
}

// DefaultSignalSource aggregates stored support outcomes from Mongo.
type DefaultSignalSource struct {
	Repo outcomesRepo.SupportOutcomeRepository
}

// HistoricSignals returns the property's aggregated rates, falling back to
// neutral defaults when there is no history or the lookup errors.
func (s *DefaultSignalSource) HistoricSignals(ctx context.Context, hotelID string) Signals {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	agg, err := s.Repo.AggregateByHotel(ctx, hotelID)
	if err != nil {
		utils.GetLogger().Warn("signal lookup failed, using neutral defaults",
			zap.String("hotelID", hotelID), zap.Error(err))
		return NeutralSignals()
	}
	if agg == nil {
		return NeutralSignals()
	}
	return Signals{
		ConfirmationConfidence: agg.ConfirmationConfidence,
		SupplyPressure:         agg.SupplyPressure,
		QuoteFailRate:          agg.QuoteFailRate,
		BookingFailRate:        agg.BookingFailRate,
	}
}

// IsLateNight reports whether t falls in the 10pm-6am local window.
func IsLateNight(t time.Time) bool {
	h := t.Hour()
	return h >= 22 || h < 6
}
