package interfaces

import "cargo_underwriting/internal/domain/entities"

// IReviewDecider applies the automatic review matrix to a scored quote.
type IReviewDecider interface {
	Decide(q entities.Quote) (entities.ReviewDecision, error)
}
