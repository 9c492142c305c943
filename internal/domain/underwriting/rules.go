// Package underwriting holds the pure decision logic of the quote engine:
// rule validation, risk scoring and the automatic review matrix.
// Nothing in here performs I/O.
package underwriting

import (
	"strings"

	"cargo_underwriting/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ValueBand adds Points when the shipment value is strictly above Above.
// Bands are cumulative.
type ValueBand struct {
	Above  decimal.Decimal
	Points int
}

// Rules is the immutable rule set shared by the validator, scorer and decider.
// Build it once (DefaultRules or a tweaked copy) and pass it to the
// constructors; they keep their own copy.
type Rules struct {
	MaxShipmentValue    decimal.Decimal
	ApprovedCargoTypes  []string
	RestrictedCountries []string
	MinCoverageDays     int
	MaxCoverageDays     int

	// Secondary composite used after the hard rules pass.
	HighValueThreshold    decimal.Decimal
	HighValuePoints       int
	HighRiskCargoTypes    []string
	HighRiskCargoPoints   int
	AirTransportPoints    int
	ManualReviewComposite int

	// Machinery above this value always goes to review.
	MachineryReviewThreshold decimal.Decimal

	ValueBands       []ValueBand
	CargoRisk        map[string]int
	DefaultCargoRisk int
	ModeRisk         map[entities.TransportationMode]int
	DefaultModeRisk  int
	MaxRiskScore     int

	// Orchestrator routing: approved verdicts at or below this score skip review.
	DirectApprovalMaxScore int

	// Review matrix thresholds.
	AutoApproveMaxScore int
	AutoRejectMinScore  int
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		MaxShipmentValue:    decimal.NewFromInt(50_000),
		ApprovedCargoTypes:  []string{"electronics", "clothing", "machinery", "food", "pharma", "other"},
		RestrictedCountries: []string{"north korea", "iran", "syria", "cuba", "russia"},
		MinCoverageDays:     1,
		MaxCoverageDays:     365,

		HighValueThreshold:    decimal.NewFromInt(25_000),
		HighValuePoints:       2,
		HighRiskCargoTypes:    []string{"chemicals", "machinery"},
		HighRiskCargoPoints:   2,
		AirTransportPoints:    1,
		ManualReviewComposite: 3,

		MachineryReviewThreshold: decimal.NewFromInt(10_000),

		ValueBands: []ValueBand{
			{Above: decimal.NewFromInt(10_000), Points: 1},
			{Above: decimal.NewFromInt(25_000), Points: 2},
			{Above: decimal.NewFromInt(50_000), Points: 3},
		},
		CargoRisk: map[string]int{
			"chemicals":   3,
			"machinery":   2,
			"pharma":      2,
			"electronics": 1,
			"food":        1,
			"other":       1,
			"clothing":    0,
		},
		DefaultCargoRisk: 1,
		ModeRisk: map[entities.TransportationMode]int{
			entities.TransportAir:  1,
			entities.TransportRoad: 1,
			entities.TransportSea:  0,
		},
		DefaultModeRisk: 0,
		MaxRiskScore:    10,

		DirectApprovalMaxScore: 4,

		AutoApproveMaxScore: 3,
		AutoRejectMinScore:  8,
	}
}

// clone deep-copies slices and maps so callers cannot mutate a rule set that
// a validator or scorer already holds.
func (r Rules) clone() Rules {
	out := r
	out.ApprovedCargoTypes = lowerAll(r.ApprovedCargoTypes)
	out.RestrictedCountries = lowerAll(r.RestrictedCountries)
	out.HighRiskCargoTypes = lowerAll(r.HighRiskCargoTypes)
	out.ValueBands = append([]ValueBand(nil), r.ValueBands...)
	out.CargoRisk = make(map[string]int, len(r.CargoRisk))
	for k, v := range r.CargoRisk {
		out.CargoRisk[normalizeCargo(k)] = v
	}
	out.ModeRisk = make(map[entities.TransportationMode]int, len(r.ModeRisk))
	for k, v := range r.ModeRisk {
		out.ModeRisk[k] = v
	}
	return out
}

func normalizeCargo(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.ToLower(strings.TrimSpace(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
