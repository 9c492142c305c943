package underwriting

import (
	"math"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
)

// Rejection reason codes, in evaluation order.
const (
	ReasonValueExceedsMaximum  = "value_exceeds_maximum"
	ReasonCargoTypeNotApproved = "cargo_type_not_approved"
	ReasonRestrictedCountry    = "restricted_country"
	ReasonStartDateInPast      = "start_date_in_past"
	ReasonCoverageTooShort     = "coverage_too_short"
	ReasonCoverageTooLong      = "coverage_too_long"
)

// Soft flags. They never fail validation on their own but force review.
const (
	FlagHighRiskComposite  = "high_risk_composite"
	FlagMachineryHighValue = "machinery_high_value"
)

// Verdict is the validator's output. It is never persisted directly.
type Verdict struct {
	Valid                bool                 `json:"valid"`
	Status               entities.QuoteStatus `json:"status"`
	Reasons              []string             `json:"reasons"`
	Flags                []string             `json:"flags"`
	RequiresManualReview bool                 `json:"requires_manual_review"`
}

// Audit converts the verdict into its persisted audit shape.
func (v Verdict) Audit() *entities.AuditValidation {
	return &entities.AuditValidation{
		Valid:                v.Valid,
		Status:               string(v.Status),
		Reasons:              append([]string{}, v.Reasons...),
		Flags:                append([]string{}, v.Flags...),
		RequiresManualReview: v.RequiresManualReview,
	}
}

type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules.clone()}
}

// Validate checks q against the static business rules. Every hard rule is
// evaluated even after one fails so Reasons lists all causes.
func (v *Validator) Validate(q entities.Quote, now time.Time) Verdict {
	r := v.rules
	verdict := Verdict{Reasons: []string{}, Flags: []string{}}

	if q.ShipmentValue.GreaterThan(r.MaxShipmentValue) {
		verdict.Reasons = append(verdict.Reasons, ReasonValueExceedsMaximum)
	}

	cargo := normalizeCargo(q.CargoType)
	if !contains(r.ApprovedCargoTypes, cargo) {
		verdict.Reasons = append(verdict.Reasons, ReasonCargoTypeNotApproved)
	}

	if v.isRestricted(q.Origin.Country) || v.isRestricted(q.Destination.Country) {
		verdict.Reasons = append(verdict.Reasons, ReasonRestrictedCountry)
	}

	if dateOnly(q.StartDate).Before(dateOnly(now)) {
		verdict.Reasons = append(verdict.Reasons, ReasonStartDateInPast)
	}

	days := CoverageDays(q.StartDate, q.EndDate)
	switch {
	case days < r.MinCoverageDays:
		verdict.Reasons = append(verdict.Reasons, ReasonCoverageTooShort)
	case days > r.MaxCoverageDays:
		verdict.Reasons = append(verdict.Reasons, ReasonCoverageTooLong)
	}

	if reason := v.checkDuplicate(q); reason != "" {
		verdict.Reasons = append(verdict.Reasons, reason)
	}

	if len(verdict.Reasons) == 0 {
		if v.riskComposite(q, cargo) >= r.ManualReviewComposite {
			verdict.RequiresManualReview = true
			verdict.Flags = append(verdict.Flags, FlagHighRiskComposite)
		}
		if cargo == "machinery" && q.ShipmentValue.GreaterThan(r.MachineryReviewThreshold) {
			verdict.RequiresManualReview = true
			verdict.Flags = append(verdict.Flags, FlagMachineryHighValue)
		}
	}

	switch {
	case len(verdict.Reasons) > 0:
		verdict.Valid = false
		verdict.Status = entities.QuoteStatusRejected
	case verdict.RequiresManualReview:
		verdict.Valid = true
		verdict.Status = entities.QuoteStatusUnderReview
	default:
		verdict.Valid = true
		verdict.Status = entities.QuoteStatusApproved
	}
	return verdict
}

// isRestricted matches by case-insensitive substring, not equality: any
// country text containing a blacklisted token is restricted. This over-matches
// names that merely contain a token and under-matches alternate spellings;
// it is kept as-is on purpose.
func (v *Validator) isRestricted(country string) bool {
	c := strings.ToLower(country)
	if strings.TrimSpace(c) == "" {
		return false
	}
	for _, token := range v.rules.RestrictedCountries {
		if strings.Contains(c, token) {
			return true
		}
	}
	return false
}

func (v *Validator) riskComposite(q entities.Quote, cargo string) int {
	r := v.rules
	score := 0
	if q.ShipmentValue.GreaterThan(r.HighValueThreshold) {
		score += r.HighValuePoints
	}
	if contains(r.HighRiskCargoTypes, cargo) {
		score += r.HighRiskCargoPoints
	}
	if q.TransportationMode == entities.TransportAir {
		score += r.AirTransportPoints
	}
	return score
}

// checkDuplicate is the duplicate-submission hook. Matching criteria have not
// been defined yet, so it never reports a duplicate.
func (v *Validator) checkDuplicate(_ entities.Quote) string {
	return ""
}

// CoverageDays returns ceil((end-start) in days).
func CoverageDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
