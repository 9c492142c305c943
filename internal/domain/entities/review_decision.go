package entities

// ReviewOutcome is what an automatic or manual review concluded.
type ReviewOutcome string

const (
	ReviewApproved      ReviewOutcome = "approved"
	ReviewRejected      ReviewOutcome = "rejected"
	ReviewNeedsMoreInfo ReviewOutcome = "needs_more_info"
)

type ReviewPriority string

const (
	PriorityLow    ReviewPriority = "low"
	PriorityMedium ReviewPriority = "medium"
	PriorityHigh   ReviewPriority = "high"
	PriorityUrgent ReviewPriority = "urgent"
)

type ReviewResolution string

const (
	ResolutionImmediate ReviewResolution = "immediate"
	ResolutionWithin24h ReviewResolution = "within_24h"
	ResolutionWithin48h ReviewResolution = "within_48h"
	ResolutionEscalated ReviewResolution = "escalated"
)

// ReviewDecision is produced by the automatic review decider and folded into
// the quote's review fields.
type ReviewDecision struct {
	Decision         ReviewOutcome    `json:"decision" dynamodbav:"decision"`
	Reason           string           `json:"reason" dynamodbav:"reason"`
	UnderwriterNotes string           `json:"underwriter_notes,omitempty" dynamodbav:"underwriter_notes,omitempty"`
	Priority         ReviewPriority   `json:"priority" dynamodbav:"priority"`
	Resolution       ReviewResolution `json:"estimated_resolution" dynamodbav:"estimated_resolution"`
}

// ResultingStatus maps a review outcome onto the quote lifecycle.
func (o ReviewOutcome) ResultingStatus() (QuoteStatus, bool) {
	switch o {
	case ReviewApproved:
		return QuoteStatusApproved, true
	case ReviewRejected:
		return QuoteStatusRejected, true
	case ReviewNeedsMoreInfo:
		return QuoteStatusNeedsInfo, true
	}
	return "", false
}
