// Package risk computes the composite support-risk score used to re-rank
// offers: the likelihood a booking will need customer-support intervention.
package risk

import (
	"math"
	"strings"

	"roadstay/models"
)

// Inputs are the normalized signals one scoring pass consumes. All historical
// rates are in [0,1].
type Inputs struct {
	ConfirmationConfidence float64
	SupplyPressure         float64
	QuoteFailRate          float64
	BookingFailRate        float64
	PolicyText             string
	IsLateNight            bool
	IsRoadside             bool
}

// Weights of the composite score. They sum to 1.0, so the score stays in
// [0,1] for bounded inputs.
const (
	weightLowConfidence    = 0.30
	weightSupplyPressure   = 0.25
	weightQuoteFailRate    = 0.15
	weightBookingFailRate  = 0.10
	weightPolicyComplexity = 0.10
	weightNightFactor      = 0.05
	weightRoadsideFactor   = 0.05
)

// Label thresholds: score > 0.6 is HIGH, > 0.3 is MEDIUM, else LOW.
const (
	highThreshold   = 0.6
	mediumThreshold = 0.3
)

// maxRankPenalty bounds how far risk can move an offer: it breaks near-ties,
// it never overrides price as the primary signal.
const maxRankPenalty = 0.10

// Compute scores one offer's support risk. Pure function: recomputed on every
// ranking pass, never cached across requests.
func Compute(in Inputs) models.SupportRisk {
	lowConfidence := 1 - in.ConfirmationConfidence
	policyComplexity := PolicyComplexity(in.PolicyText)
	nightFactor := 0.0
	if in.IsLateNight {
		nightFactor = 1
	}
	roadsideFactor := 0.0
	if in.IsRoadside {
		roadsideFactor = 1
	}

	score := weightLowConfidence*lowConfidence +
		weightSupplyPressure*in.SupplyPressure +
		weightQuoteFailRate*in.QuoteFailRate +
		weightBookingFailRate*in.BookingFailRate +
		weightPolicyComplexity*policyComplexity +
		weightNightFactor*nightFactor +
		weightRoadsideFactor*roadsideFactor

	label := models.RiskLow
	if score > highThreshold {
		label = models.RiskHigh
	} else if score > mediumThreshold {
		label = models.RiskMedium
	}

	// Reason codes in priority order, at most three.
	var reasons []string
	if in.SupplyPressure > 0.7 {
		reasons = append(reasons, "AVAILABILITY_CHANGING_FAST")
	}
	if in.QuoteFailRate > 0.2 {
		reasons = append(reasons, "QUOTE_CHANGES_COMMON")
	}
	if in.ConfirmationConfidence < 0.5 {
		reasons = append(reasons, "CONFIRMATION_DELAY_POSSIBLE")
	}
	if label == models.RiskLow {
		reasons = append(reasons, "STABLE_PRICE", "CONFIRMS_FAST")
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}

	return models.SupportRisk{
		RiskScore:   math.Round(score*100) / 100,
		Label:       label,
		ReasonCodes: reasons,
	}
}

// PolicyComplexity is a bounded heuristic over cancellation-policy text.
// Empty text scores 0.4: an absent policy is moderately opaque, not safe.
func PolicyComplexity(text string) float64 {
	if text == "" {
		return 0.4
	}

	complexity := 0.0
	lower := strings.ToLower(text)

	if strings.Contains(lower, "non-refundable") || strings.Contains(lower, "no refund") {
		complexity += 0.2
	}
	if strings.Contains(lower, "cancel by") || strings.Contains(lower, "window") {
		complexity += 0.2
	}
	if strings.Contains(lower, "%") || strings.Contains(lower, "charge") {
		complexity += 0.2
	}
	if len(text) > 200 {
		complexity += 0.2
	}

	return math.Min(1, complexity)
}

// ApplyPenalty discounts a base desirability score by the bounded risk
// penalty.
func ApplyPenalty(baseScore, riskScore float64) float64 {
	return baseScore - riskScore*maxRankPenalty
}
