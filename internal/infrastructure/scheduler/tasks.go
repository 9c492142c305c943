// Package scheduler runs quote work on asynq: on-demand processing tasks and
// the periodic review-drain and expiration sweeps.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskProcessQuote   = "quotes.process"
	TaskExpireQuotes   = "quotes.expire"
	TaskProcessReviews = "quotes.reviews.process"
)

type ProcessQuotePayload struct {
	QuoteID   string `json:"quoteId"`
	Immediate bool   `json:"immediate"`
}

func NewProcessQuoteTask(payload ProcessQuotePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProcessQuote, data), nil
}

func ParseProcessQuotePayload(task *asynq.Task) (ProcessQuotePayload, error) {
	var payload ProcessQuotePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProcessQuotePayload{}, err
	}
	return payload, nil
}

func NewExpireQuotesTask() *asynq.Task {
	return asynq.NewTask(TaskExpireQuotes, nil)
}

func NewProcessReviewsTask() *asynq.Task {
	return asynq.NewTask(TaskProcessReviews, nil)
}
