package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"byblos-atelier/internal/mailer"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	ch chan queue.Delivery
}

func (q *fakeQueue) Publish(context.Context, *model.MailJob) error { return nil }

func (q *fakeQueue) Subscribe(context.Context) (<-chan queue.Delivery, error) {
	return q.ch, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []*mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type outcome struct {
	acked   bool
	nacked  bool
	requeue bool
}

func delivery(job *model.MailJob, out *outcome) queue.Delivery {
	return queue.Delivery{
		Data: job,
		Ack:  func() { out.acked = true },
		Nack: func(requeue bool) { out.nacked = true; out.requeue = requeue },
	}
}

func runWorker(t *testing.T, m mailer.Mailer, deliveries ...queue.Delivery) {
	t.Helper()
	renderer, err := mailer.NewRenderer()
	require.NoError(t, err)

	q := &fakeQueue{ch: make(chan queue.Delivery, len(deliveries))}
	for _, d := range deliveries {
		q.ch <- d
	}
	close(q.ch)

	w := NewMailWorker(q, renderer, m)
	require.NoError(t, w.Start(context.Background()))

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drain the queue")
	}
}

func TestMailWorker_AckOnSuccess(t *testing.T) {
	m := &fakeMailer{}
	var out outcome
	job := model.NewMailJob(model.MailTemplateWelcome, "nadia@example.com", map[string]string{"name": "Nadia", "role": "organizer"})

	runWorker(t, m, delivery(job, &out))

	assert.True(t, out.acked)
	assert.False(t, out.nacked)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "nadia@example.com", m.sent[0].To)
}

func TestMailWorker_NackRequeueOnSendFailure(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp: 421 try later")}
	var out outcome
	job := model.NewMailJob(model.MailTemplateWelcome, "nadia@example.com", nil)

	runWorker(t, m, delivery(job, &out))

	assert.False(t, out.acked)
	assert.True(t, out.nacked)
	assert.True(t, out.requeue)
}

func TestMailWorker_DropUnknownTemplate(t *testing.T) {
	m := &fakeMailer{}
	var out outcome
	job := model.NewMailJob(model.MailTemplate("invoice"), "nadia@example.com", nil)

	runWorker(t, m, delivery(job, &out))

	assert.True(t, out.nacked)
	assert.False(t, out.requeue)
	assert.Empty(t, m.sent)
}
