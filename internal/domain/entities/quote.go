package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the underwriting lifecycle of a cargo quote.
//
// Domain notes:
//   - submitted is the only entry state; quotes are scored once, at submission.
//   - rejected and expired are terminal: no transition ever leaves them.
//   - payment_status is an independent lifecycle and is never driven from here.
type QuoteStatus string

const (
	QuoteStatusSubmitted   QuoteStatus = "submitted"
	QuoteStatusApproved    QuoteStatus = "approved"
	QuoteStatusRejected    QuoteStatus = "rejected"
	QuoteStatusUnderReview QuoteStatus = "under_review"
	QuoteStatusNeedsInfo   QuoteStatus = "needs_info"
	QuoteStatusExpired     QuoteStatus = "expired"
)

var quoteStatuses = []QuoteStatus{
	QuoteStatusSubmitted,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusUnderReview,
	QuoteStatusNeedsInfo,
	QuoteStatusExpired,
}

// ParseQuoteStatus accepts only the closed set of known statuses.
func ParseQuoteStatus(raw string) (QuoteStatus, error) {
	v := QuoteStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range quoteStatuses {
		if s == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown quote status %q", raw)
}

// IsTerminal reports whether no further transition may happen.
func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteStatusRejected, QuoteStatusExpired:
		return true
	default:
		// Stores reject unknown statuses through ParseQuoteStatus, so anything
		// reaching here is one of the open states.
		return false
	}
}

// IsValid reports whether s belongs to the closed status set.
func (s QuoteStatus) IsValid() bool {
	_, err := ParseQuoteStatus(string(s))
	return err == nil
}

type TransportationMode string

const (
	TransportSea  TransportationMode = "sea"
	TransportAir  TransportationMode = "air"
	TransportRoad TransportationMode = "road"
)

func (m TransportationMode) IsValid() bool {
	switch m {
	case TransportSea, TransportAir, TransportRoad:
		return true
	}
	return false
}

type CoverageTier string

const (
	CoverageStandard   CoverageTier = "standard"
	CoveragePremium    CoverageTier = "premium"
	CoverageEnterprise CoverageTier = "enterprise"
)

func (t CoverageTier) IsValid() bool {
	switch t {
	case CoverageStandard, CoveragePremium, CoverageEnterprise:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Location is free text coming from an external lookup; it is never checked
// for existence.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Quote is the cargo insurance quote persisted by the quote store.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-created_at-index): status + created_at, drives review-queue
//     draining and the expiration sweep.
//
// Monetary representation:
//   - ShipmentValue, Premium and Deductible are USD decimals.
type Quote struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`

	CargoType          string             `json:"cargo_type"`
	ShipmentValue      decimal.Decimal    `json:"shipment_value"`
	Origin             Location           `json:"origin"`
	Destination        Location           `json:"destination"`
	TransportationMode TransportationMode `json:"transportation_mode"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            time.Time          `json:"end_date"`

	CoverageTier CoverageTier    `json:"coverage_tier,omitempty"`
	Premium      decimal.Decimal `json:"premium"`
	Deductible   decimal.Decimal `json:"deductible"`

	Status             QuoteStatus   `json:"status"`
	RiskScore          *int          `json:"risk_score,omitempty"`
	RejectionReason    string        `json:"rejection_reason,omitempty"`
	ReviewDecision     ReviewOutcome `json:"review_decision,omitempty"`
	ReviewReason       string        `json:"review_reason,omitempty"`
	UnderwriterNotes   string        `json:"underwriter_notes,omitempty"`
	ApprovalConditions []string      `json:"approval_conditions,omitempty"`
	ApprovedAt         *time.Time    `json:"approved_at,omitempty"`
	ReviewedAt         *time.Time    `json:"reviewed_at,omitempty"`
	ReviewQueuedAt     *time.Time    `json:"review_queued_at,omitempty"`
	QuoteExpiresAt     time.Time     `json:"quote_expires_at"`
	PaymentStatus      PaymentStatus `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRiskScore reports whether the quote has been scored.
func (q Quote) HasRiskScore() bool { return q.RiskScore != nil }

// QuotePatch carries the partial set of fields written by a single update.
// Nil fields are left untouched by the store. When ExpectedStatus is set the
// store only writes if the stored status still equals it, and otherwise
// behaves as if the quote did not exist.
type QuotePatch struct {
	ExpectedStatus     *QuoteStatus
	Status             *QuoteStatus
	RiskScore          *int
	RejectionReason    *string
	ReviewDecision     *ReviewOutcome
	ReviewReason       *string
	UnderwriterNotes   *string
	ApprovalConditions []string
	ApprovedAt         *time.Time
	ReviewedAt         *time.Time
	ReviewQueuedAt     *time.Time
	UpdatedAt          time.Time
}

// Apply folds the patch into q and returns the result. Stores that cannot
// return the updated row use it to build the response.
func (p QuotePatch) Apply(q Quote) Quote {
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.RiskScore != nil {
		v := *p.RiskScore
		q.RiskScore = &v
	}
	if p.RejectionReason != nil {
		q.RejectionReason = *p.RejectionReason
	}
	if p.ReviewDecision != nil {
		q.ReviewDecision = *p.ReviewDecision
	}
	if p.ReviewReason != nil {
		q.ReviewReason = *p.ReviewReason
	}
	if p.UnderwriterNotes != nil {
		q.UnderwriterNotes = *p.UnderwriterNotes
	}
	if p.ApprovalConditions != nil {
		q.ApprovalConditions = append([]string(nil), p.ApprovalConditions...)
	}
	if p.ApprovedAt != nil {
		q.ApprovedAt = p.ApprovedAt
	}
	if p.ReviewedAt != nil {
		q.ReviewedAt = p.ReviewedAt
	}
	if p.ReviewQueuedAt != nil {
		q.ReviewQueuedAt = p.ReviewQueuedAt
	}
	if !p.UpdatedAt.IsZero() {
		q.UpdatedAt = p.UpdatedAt
	}
	return q
}

// SetStatus is a small helper to keep call sites readable.
func (p *QuotePatch) SetStatus(s QuoteStatus) { p.Status = &s }

// ExpectStatus guards the update on the currently stored status.
func (p *QuotePatch) ExpectStatus(s QuoteStatus) { p.ExpectedStatus = &s }
