package response

import (
	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase"
)

type ValidationResponse struct {
	Valid                bool     `json:"valid"`
	Status               string   `json:"status"`
	Reasons              []string `json:"reasons"`
	Flags                []string `json:"flags"`
	RequiresManualReview bool     `json:"requires_manual_review"`
}

type ReviewDecisionResponse struct {
	Decision            string `json:"decision"`
	Reason              string `json:"reason"`
	UnderwriterNotes    string `json:"underwriter_notes,omitempty"`
	Priority            string `json:"priority"`
	EstimatedResolution string `json:"estimated_resolution"`
}

type AdvisoryResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ProcessResponse is the outcome of running a quote through underwriting.
type ProcessResponse struct {
	QuoteID           string                  `json:"quote_id"`
	Decision          string                  `json:"decision"`
	RiskScore         *int                    `json:"risk_score,omitempty"`
	ImmediateDecision bool                    `json:"immediate_decision"`
	AutoApproved      bool                    `json:"auto_approved"`
	RequiresDocuments bool                    `json:"requires_documents"`
	Message           string                  `json:"message"`
	Validation        ValidationResponse      `json:"validation"`
	ReviewDecision    *ReviewDecisionResponse `json:"review_decision,omitempty"`
	Advisories        []AdvisoryResponse      `json:"advisories,omitempty"`
	Quote             QuoteResponse           `json:"quote"`
}

func FromProcessResult(r usecase.ProcessResult) ProcessResponse {
	out := ProcessResponse{
		QuoteID:           r.Quote.ID,
		Decision:          string(r.Decision),
		RiskScore:         r.Quote.RiskScore,
		ImmediateDecision: r.ImmediateDecision,
		AutoApproved:      r.AutoApproved,
		RequiresDocuments: r.RequiresDocuments,
		Message:           r.Message,
		Validation: ValidationResponse{
			Valid:                r.Validation.Valid,
			Status:               string(r.Validation.Status),
			Reasons:              nonNil(r.Validation.Reasons),
			Flags:                nonNil(r.Validation.Flags),
			RequiresManualReview: r.Validation.RequiresManualReview,
		},
		ReviewDecision: fromReviewDecision(r.ReviewDecision),
		Quote:          FromQuote(r.Quote),
	}
	for _, a := range r.Advisories {
		out.Advisories = append(out.Advisories, AdvisoryResponse{Kind: string(a.Kind), Message: a.Message})
	}
	return out
}

type EnqueuedResponse struct {
	QuoteID string `json:"quote_id"`
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
}

type ReviewItemResponse struct {
	QuoteID  string                  `json:"quote_id"`
	Status   string                  `json:"status,omitempty"`
	Decision *ReviewDecisionResponse `json:"decision,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

type ReviewBatchResponse struct {
	Processed int                  `json:"processed"`
	Failed    int                  `json:"failed"`
	Results   []ReviewItemResponse `json:"results"`
}

func FromReviewBatch(b usecase.ReviewBatchResult) ReviewBatchResponse {
	out := ReviewBatchResponse{
		Processed: b.Processed,
		Failed:    b.Failed,
		Results:   make([]ReviewItemResponse, 0, len(b.Results)),
	}
	for _, it := range b.Results {
		out.Results = append(out.Results, ReviewItemResponse{
			QuoteID:  it.QuoteID,
			Status:   string(it.Status),
			Decision: fromReviewDecision(it.Decision),
			Error:    it.Error,
		})
	}
	return out
}

type ExpirationResponse struct {
	Expired int `json:"expired"`
}

func fromReviewDecision(d *entities.ReviewDecision) *ReviewDecisionResponse {
	if d == nil {
		return nil
	}
	return &ReviewDecisionResponse{
		Decision:            string(d.Decision),
		Reason:              d.Reason,
		UnderwriterNotes:    d.UnderwriterNotes,
		Priority:            string(d.Priority),
		EstimatedResolution: string(d.Resolution),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
