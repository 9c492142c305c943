package interfaces

import "context"

// ITaskEnqueuer hands quote processing off to the background worker.
type ITaskEnqueuer interface {
	EnqueueProcessQuote(ctx context.Context, quoteID string, immediate bool) (taskID string, err error)
}
