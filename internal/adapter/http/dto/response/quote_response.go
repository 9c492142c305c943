package response

import (
	"time"

	"cargo_underwriting/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type LocationResponse struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

type QuoteResponse struct {
	ID                 string           `json:"id"`
	QuoteNumber        string           `json:"quote_number"`
	CargoType          string           `json:"cargo_type"`
	ShipmentValue      decimal.Decimal  `json:"shipment_value"`
	Origin             LocationResponse `json:"origin"`
	Destination        LocationResponse `json:"destination"`
	TransportationMode string           `json:"transportation_mode"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	CoverageTier       string           `json:"coverage_tier,omitempty"`
	Premium            decimal.Decimal  `json:"premium"`
	Deductible         decimal.Decimal  `json:"deductible"`
	Status             string           `json:"status"`
	RiskScore          *int             `json:"risk_score,omitempty"`
	RejectionReason    string           `json:"rejection_reason,omitempty"`
	ReviewDecision     string           `json:"review_decision,omitempty"`
	ReviewReason       string           `json:"review_reason,omitempty"`
	UnderwriterNotes   string           `json:"underwriter_notes,omitempty"`
	ApprovalConditions []string         `json:"approval_conditions,omitempty"`
	ApprovedAt         *time.Time       `json:"approved_at,omitempty"`
	ReviewedAt         *time.Time       `json:"reviewed_at,omitempty"`
	ReviewQueuedAt     *time.Time       `json:"review_queued_at,omitempty"`
	QuoteExpiresAt     time.Time        `json:"quote_expires_at"`
	PaymentStatus      string           `json:"payment_status"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                 q.ID,
		QuoteNumber:        q.QuoteNumber,
		CargoType:          q.CargoType,
		ShipmentValue:      q.ShipmentValue,
		Origin:             LocationResponse(q.Origin),
		Destination:        LocationResponse(q.Destination),
		TransportationMode: string(q.TransportationMode),
		StartDate:          q.StartDate,
		EndDate:            q.EndDate,
		CoverageTier:       string(q.CoverageTier),
		Premium:            q.Premium,
		Deductible:         q.Deductible,
		Status:             string(q.Status),
		RiskScore:          q.RiskScore,
		RejectionReason:    q.RejectionReason,
		ReviewDecision:     string(q.ReviewDecision),
		ReviewReason:       q.ReviewReason,
		UnderwriterNotes:   q.UnderwriterNotes,
		ApprovalConditions: q.ApprovalConditions,
		ApprovedAt:         q.ApprovedAt,
		ReviewedAt:         q.ReviewedAt,
		ReviewQueuedAt:     q.ReviewQueuedAt,
		QuoteExpiresAt:     q.QuoteExpiresAt,
		PaymentStatus:      string(q.PaymentStatus),
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}
