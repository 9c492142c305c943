package underwriting

import "cargo_underwriting/internal/domain/entities"

type Scorer struct {
	rules Rules
}

func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules.clone()}
}

// Score returns an additive risk score capped at MaxRiskScore. It runs
// independently of the validator and does not special-case values the
// validator would reject.
func (s *Scorer) Score(q entities.Quote) int {
	r := s.rules
	score := 0

	for _, band := range r.ValueBands {
		if q.ShipmentValue.GreaterThan(band.Above) {
			score += band.Points
		}
	}

	if pts, ok := r.CargoRisk[normalizeCargo(q.CargoType)]; ok {
		score += pts
	} else {
		score += r.DefaultCargoRisk
	}

	if pts, ok := r.ModeRisk[q.TransportationMode]; ok {
		score += pts
	} else {
		score += r.DefaultModeRisk
	}

	if score > r.MaxRiskScore {
		score = r.MaxRiskScore
	}
	if score < 0 {
		score = 0
	}
	return score
}
