package queue

import (
	"context"
	"time"

	"byblos-atelier/internal/model"
	"byblos-atelier/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.MailJob
	Ack  func()
	Nack func(requeue bool)
}

type MailQueue interface {
	Publish(ctx context.Context, job *model.MailJob) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type memoryEnvelope struct {
	job      *model.MailJob
	attempts int
}

// MemoryMailQueue is a process-local queue backed by a buffered channel. Jobs are lost
// on restart.
type MemoryMailQueue struct {
	ch         chan memoryEnvelope
	retryDelay time.Duration
	maxRetries int
}

func NewMemoryMailQueue(bufferSize int) *MemoryMailQueue {
	return &MemoryMailQueue{
		ch:         make(chan memoryEnvelope, bufferSize),
		retryDelay: 5 * time.Second,
		maxRetries: 5,
	}
}

func (q *MemoryMailQueue) Publish(ctx context.Context, job *model.MailJob) error {
	select {
	case q.ch <- memoryEnvelope{job: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryMailQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case env := <-q.ch:
				select {
				case out <- q.newDelivery(ctx, env):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *MemoryMailQueue) newDelivery(ctx context.Context, env memoryEnvelope) Delivery {
	return Delivery{
		Data: env.job,
		Ack:  func() {},
		Nack: func(requeue bool) {
			if !requeue {
				return
			}
			env.attempts++
			if env.attempts >= q.maxRetries {
				logger.WithComponent("mq").Warn("Discard mail job after retries",
					zap.String("job_id", env.job.ID),
					zap.Int("attempts", env.attempts),
				)
				return
			}
			// requeue later without blocking the consumer
			go func() {
				select {
				case <-time.After(q.retryDelay):
				case <-ctx.Done():
					return
				}
				select {
				case q.ch <- env:
				case <-ctx.Done():
				}
			}()
		},
	}
}
