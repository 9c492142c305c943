package request

import (
	"strings"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase"
)

// ManualReviewRequest is an underwriter's override of a quote in review.
type ManualReviewRequest struct {
	Decision   string   `json:"decision" binding:"required"`
	Notes      string   `json:"notes"`
	Conditions []string `json:"conditions"`
	Reviewer   string   `json:"reviewer"`
}

func (r ManualReviewRequest) ToCommand() usecase.ManualReviewCommand {
	return usecase.ManualReviewCommand{
		Decision:   entities.ReviewOutcome(strings.ToLower(strings.TrimSpace(r.Decision))),
		Notes:      strings.TrimSpace(r.Notes),
		Conditions: r.Conditions,
		Reviewer:   strings.TrimSpace(r.Reviewer),
	}
}
