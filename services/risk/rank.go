package risk

import (
	"context"
	"sort"
	"sync"

	"roadstay/models"
)

// Ranker enriches offers with support risk and re-orders them so the safest
// cheap option comes first.
type Ranker struct {
	Signals SignalSource
}

// NewRanker builds a Ranker over the given signal source.
func NewRanker(signals SignalSource) *Ranker {
	return &Ranker{Signals: signals}
}

type scoredOffer struct {
	offer     models.Offer
	penalized float64
}

// Rank scores every offer and returns a new slice sorted by penalized
// desirability, descending. The base score is the offer's price position
// within this set, normalized to [0,1]; the risk penalty is bounded at 10% of
// that scale, so risk breaks near-ties but never overrides a clear price
// advantage. Ties keep the original supplier order. Input offers are not
// mutated.
func (r *Ranker) Rank(ctx context.Context, offers []models.Offer, lateNight, roadside bool) []models.Offer {
	if len(offers) == 0 {
		return nil
	}

	minAmount, maxAmount := priceBounds(offers)

	scored := make([]scoredOffer, len(offers))
	var wg sync.WaitGroup
	for i, offer := range offers {
		wg.Add(1)
		go func(i int, offer models.Offer) {
			defer wg.Done()

			signals := r.Signals.HistoricSignals(ctx, offer.HotelID)
			policyText := ""
			if len(offer.Rates) > 0 {
				policyText = offer.Rates[0].CancellationPolicyText
			}
			supportRisk := Compute(Inputs{
				ConfirmationConfidence: signals.ConfirmationConfidence,
				SupplyPressure:         signals.SupplyPressure,
				QuoteFailRate:          signals.QuoteFailRate,
				BookingFailRate:        signals.BookingFailRate,
				PolicyText:             policyText,
				IsLateNight:            lateNight,
				IsRoadside:             roadside,
			})

			enriched := offer
			enriched.SupportRisk = &supportRisk
			enriched.Confidence = signals.ConfirmationConfidence
			if signals.SupplyPressure > 0.7 {
				enriched.PressureLabel = models.PressureLimited
			}

			base := 1.0
			if maxAmount > minAmount && len(offer.Rates) > 0 {
				base = (maxAmount - offer.Rates[0].TotalAmount) / (maxAmount - minAmount)
			}
			scored[i] = scoredOffer{offer: enriched, penalized: ApplyPenalty(base, supportRisk.RiskScore)}
		}(i, offer)
	}
	wg.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].penalized > scored[j].penalized
	})

	ranked := make([]models.Offer, len(scored))
	for i, s := range scored {
		ranked[i] = s.offer
	}
	return ranked
}

func priceBounds(offers []models.Offer) (min, max float64) {
	first := true
	for _, o := range offers {
		if len(o.Rates) == 0 {
			continue
		}
		amount := o.Rates[0].TotalAmount
		if first {
			min, max = amount, amount
			first = false
			continue
		}
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}
	return min, max
}
