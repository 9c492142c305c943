package scheduler

import (
	"context"
	"fmt"
	"time"

	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultQueue       = "underwriting"
	processMaxRetry    = 5
	processTaskTimeout = 30 * time.Second
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client enqueues quote processing for the worker.
type Client struct {
	client enqueuer
	queue  string
}

var _ interfaces.ITaskEnqueuer = (*Client)(nil)

func NewClient(redisURL, queue string) (*Client, error) {
	opt, err := RedisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}
	return newClient(asynq.NewClient(opt), queue), nil
}

func newClient(e enqueuer, queue string) *Client {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Client{client: e, queue: queue}
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueProcessQuote(ctx context.Context, quoteID string, immediate bool) (string, error) {
	task, err := NewProcessQuoteTask(ProcessQuotePayload{QuoteID: quoteID, Immediate: immediate})
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(processMaxRetry),
		asynq.Timeout(processTaskTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s for quote %s: %w", TaskProcessQuote, quoteID, err)
	}
	return info.ID, nil
}

// RedisClientOpt converts a redis:// or rediss:// URL into asynq options.
func RedisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
