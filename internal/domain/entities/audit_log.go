package entities

import "time"

// AuditAction classifies an audit log entry. The engine only emits status
// changes today.
type AuditAction string

const AuditActionStatusChange AuditAction = "status_change"

// AuditValidation is the persisted shape of a validation verdict.
type AuditValidation struct {
	Valid                bool     `json:"valid" dynamodbav:"valid"`
	Status               string   `json:"status" dynamodbav:"status"`
	Reasons              []string `json:"reasons" dynamodbav:"reasons"`
	Flags                []string `json:"flags" dynamodbav:"flags"`
	RequiresManualReview bool     `json:"requires_manual_review" dynamodbav:"requires_manual_review"`
}

// AuditDetails is the payload attached to a status_change entry.
type AuditDetails struct {
	PreviousStatus    QuoteStatus      `json:"previous_status" dynamodbav:"previous_status"`
	NewStatus         QuoteStatus      `json:"new_status" dynamodbav:"new_status"`
	Validation        *AuditValidation `json:"validation,omitempty" dynamodbav:"validation,omitempty"`
	RiskScore         *int             `json:"risk_score,omitempty" dynamodbav:"risk_score,omitempty"`
	ImmediateDecision bool             `json:"immediate_decision" dynamodbav:"immediate_decision"`
	Source            string           `json:"source,omitempty" dynamodbav:"source,omitempty"`
	ReviewDecision    *ReviewDecision  `json:"review_decision,omitempty" dynamodbav:"review_decision,omitempty"`
}

// AuditLogEntry is an append-only record of a quote transition.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
type AuditLogEntry struct {
	ID        string       `json:"id"`
	QuoteID   string       `json:"quote_id"`
	Action    AuditAction  `json:"action"`
	Details   AuditDetails `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
}
