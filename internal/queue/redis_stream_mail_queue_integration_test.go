package queue

import (
	"context"
	"testing"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readPending publishes one job and reads it into the consumer's pending list.
func readPending(t *testing.T, client *redis.Client, q *RedisStreamMailQueue, jobID string) redis.XMessage {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, q.Publish(ctx, &model.MailJob{ID: jobID, Template: model.MailTemplatePasswordReset, To: "a@b.test"}))

	streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: q.consumerName,
		Streams:  []string{q.streamKey, ">"},
		Count:    1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, streams, 1)
	require.Len(t, streams[0].Messages, 1)
	return streams[0].Messages[0]
}

func pendingCount(t *testing.T, client *redis.Client, q *RedisStreamMailQueue) int64 {
	t.Helper()
	summary, err := client.XPending(context.Background(), q.streamKey, q.groupName).Result()
	require.NoError(t, err)
	return summary.Count
}

func TestRedisStreamMailQueue_SettleAfterShutdown(t *testing.T) {
	client := testutil.Redis(t)

	t.Run("Ack after the subscribe context is cancelled", func(t *testing.T) {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		q, err := NewRedisStreamMailQueue(context.Background(), client, "ack", nil)
		require.NoError(t, err)
		msg := readPending(t, client, q, "job-ack")

		ctx, cancel := context.WithCancel(context.Background())
		d := q.newDelivery(ctx, msg)
		require.NotNil(t, d)
		cancel()

		d.Ack()

		assert.Zero(t, pendingCount(t, client, q))
	})

	t.Run("Discard after the subscribe context is cancelled", func(t *testing.T) {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		q, err := NewRedisStreamMailQueue(context.Background(), client, "nack", nil)
		require.NoError(t, err)
		msg := readPending(t, client, q, "job-nack")

		ctx, cancel := context.WithCancel(context.Background())
		d := q.newDelivery(ctx, msg)
		require.NotNil(t, d)
		cancel()

		d.Nack(false)

		assert.Zero(t, pendingCount(t, client, q))
	})

	t.Run("Requeue keeps the entry pending", func(t *testing.T) {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		q, err := NewRedisStreamMailQueue(context.Background(), client, "requeue", nil)
		require.NoError(t, err)
		msg := readPending(t, client, q, "job-requeue")

		d := q.newDelivery(context.Background(), msg)
		require.NotNil(t, d)
		assert.Equal(t, "job-requeue", d.Data.ID)

		d.Nack(true)

		assert.Equal(t, int64(1), pendingCount(t, client, q))
	})
}
