package underwriting

import (
	"errors"
	"fmt"

	"cargo_underwriting/internal/domain/entities"
)

var ErrQuoteNotScored = errors.New("quote has no risk score")

const (
	DecisionReasonLowRisk          = "low risk profile"
	DecisionReasonHighRisk         = "risk score exceeds threshold"
	DecisionReasonMachineryDocs    = "additional documentation required: safety certificates and packaging details for high-value machinery"
	DecisionReasonChemicalsMSDS    = "Material Safety Data Sheet (MSDS) required for chemical shipments"
	DecisionReasonMediumRiskAccept = "medium risk approved with standard conditions"
)

// Decider applies the secondary review matrix to quotes already flagged for
// review.
type Decider struct {
	rules Rules
}

func NewDecider(rules Rules) *Decider {
	return &Decider{rules: rules.clone()}
}

// Decide evaluates the matrix in order; the first matching row wins.
func (d *Decider) Decide(q entities.Quote) (entities.ReviewDecision, error) {
	if q.RiskScore == nil {
		return entities.ReviewDecision{}, ErrQuoteNotScored
	}
	score := *q.RiskScore
	cargo := normalizeCargo(q.CargoType)
	notes := fmt.Sprintf("automated review: risk score %d", score)

	switch {
	case score <= d.rules.AutoApproveMaxScore:
		return entities.ReviewDecision{
			Decision:         entities.ReviewApproved,
			Reason:           DecisionReasonLowRisk,
			UnderwriterNotes: notes,
			Priority:         entities.PriorityLow,
			Resolution:       entities.ResolutionImmediate,
		}, nil
	case score >= d.rules.AutoRejectMinScore:
		return entities.ReviewDecision{
			Decision:         entities.ReviewRejected,
			Reason:           DecisionReasonHighRisk,
			UnderwriterNotes: notes,
			Priority:         entities.PriorityHigh,
			Resolution:       entities.ResolutionImmediate,
		}, nil
	case cargo == "machinery" && q.ShipmentValue.GreaterThan(d.rules.MachineryReviewThreshold):
		return entities.ReviewDecision{
			Decision:         entities.ReviewNeedsMoreInfo,
			Reason:           DecisionReasonMachineryDocs,
			UnderwriterNotes: notes,
			Priority:         entities.PriorityMedium,
			Resolution:       entities.ResolutionWithin24h,
		}, nil
	case cargo == "chemicals":
		return entities.ReviewDecision{
			Decision:         entities.ReviewNeedsMoreInfo,
			Reason:           DecisionReasonChemicalsMSDS,
			UnderwriterNotes: notes,
			Priority:         entities.PriorityHigh,
			Resolution:       entities.ResolutionWithin24h,
		}, nil
	default:
		return entities.ReviewDecision{
			Decision:         entities.ReviewApproved,
			Reason:           DecisionReasonMediumRiskAccept,
			UnderwriterNotes: notes,
			Priority:         entities.PriorityMedium,
			Resolution:       entities.ResolutionImmediate,
		}, nil
	}
}
