package scheduler

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

type registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// PeriodicConfig holds the cron specs for the recurring sweeps. An empty spec
// disables that sweep.
type PeriodicConfig struct {
	Queue               string
	ExpirationSweepCron string
	ReviewDrainCron     string
}

func NewScheduler(redisURL string) (*asynq.Scheduler, error) {
	opt, err := RedisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}
	return asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC}), nil
}

// RegisterPeriodicTasks returns the asynq entry ids that were registered.
// Both sweeps are unique for their period so a slow run is never stacked.
func RegisterPeriodicTasks(s registrar, cfg PeriodicConfig) ([]string, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{cfg.ExpirationSweepCron, NewExpireQuotesTask()},
		{cfg.ReviewDrainCron, NewProcessReviewsTask()},
	}

	var ids []string
	for _, e := range entries {
		if e.spec == "" {
			continue
		}
		id, err := s.Register(e.spec, e.task, asynq.Queue(queue), asynq.MaxRetry(0), asynq.Unique(time.Minute))
		if err != nil {
			return ids, fmt.Errorf("register %s: %w", e.task.Type(), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
