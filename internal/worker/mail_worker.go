package worker

import (
	"context"
	"time"

	"byblos-atelier/internal/mailer"
	"byblos-atelier/internal/metrics"
	"byblos-atelier/internal/queue"
	"byblos-atelier/pkg/logger"

	"go.uber.org/zap"
)

type MailWorker interface {
	// Start subscribes to the queue and returns; delivery runs until ctx is cancelled.
	Start(ctx context.Context) error
	Done() <-chan struct{}
}

type MailWorkerImpl struct {
	queue    queue.MailQueue
	renderer *mailer.Renderer
	mailer   mailer.Mailer
	timeout  time.Duration
	done     chan struct{}
}

func NewMailWorker(q queue.MailQueue, renderer *mailer.Renderer, m mailer.Mailer) MailWorker {
	return &MailWorkerImpl{
		queue:    q,
		renderer: renderer,
		mailer:   m,
		timeout:  30 * time.Second,
		done:     make(chan struct{}),
	}
}

func (w *MailWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		defer close(w.done)
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()
	return nil
}

func (w *MailWorkerImpl) Done() <-chan struct{} {
	return w.done
}

func (w *MailWorkerImpl) handle(ctx context.Context, msg queue.Delivery) {
	log := logger.WithComponent("mail").With(
		zap.String("job_id", msg.Data.ID),
		zap.String("template", string(msg.Data.Template)),
	)

	rendered, err := w.renderer.Render(msg.Data)
	if err != nil {
		// a job that cannot render will never succeed
		log.Error("Drop mail job", zap.Error(err))
		metrics.TrackMailJob(string(msg.Data.Template), "dropped")
		msg.Nack(false)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.mailer.Send(sendCtx, rendered); err != nil {
		log.Warn("Mail delivery failed, will retry", zap.Error(err))
		metrics.TrackMailJob(string(msg.Data.Template), "retry")
		msg.Nack(true)
		return
	}

	log.Info("Mail delivered")
	metrics.TrackMailJob(string(msg.Data.Template), "sent")
	msg.Ack()
}
