package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"byblos-atelier/internal/model"
	"byblos-atelier/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	MailStreamKey          = "mail:stream"
	MailConsumerGroupName  = "mail-workers"
	MailConsumerNamePrefix = "worker"
	mailPayloadField       = "job"
)

// RedisStreamConfig holds timeouts and retry limits; zero values fall back to defaults.
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // pending entries idle this long are re-claimed
	MaxRetryCount      int           // deliveries beyond this are discarded
	ReadGroupBlockTime time.Duration
}

func defaultRedisStreamConfig() RedisStreamConfig {
	return RedisStreamConfig{
		ClaimMinIdleTime:   30 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
}

type RedisStreamMailQueue struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamConfig
}

func NewRedisStreamMailQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (*RedisStreamMailQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
	}
	q := &RedisStreamMailQueue{
		client:       client,
		streamKey:    MailStreamKey,
		groupName:    MailConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", MailConsumerNamePrefix, consumerID),
		cfg:          cfg,
	}
	if err := q.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamMailQueue) ensureConsumerGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.streamKey, q.groupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisStreamMailQueue) Publish(ctx context.Context, job *model.MailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamKey,
		ID:     "*",
		Values: map[string]interface{}{mailPayloadField: string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamMailQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.runAutoClaim(ctx, out)
	}()
	go func() {
		defer wg.Done()
		q.runReadLoop(ctx, out)
	}()
	// out closes only after both producers have stopped sending
	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

func (q *RedisStreamMailQueue) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			q.readAndDeliver(ctx, out)
		}
	}
}

// readAndDeliver only reads new entries (">"). Entries already handed out stay in the
// pending list and come back through XAUTOCLAIM once idle.
func (q *RedisStreamMailQueue) readAndDeliver(ctx context.Context, out chan<- Delivery) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: q.consumerName,
		Streams:  []string{q.streamKey, ">"},
		Count:    10,
		Block:    q.cfg.ReadGroupBlockTime,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.WithComponent("mq").Error("XReadGroup failed", zap.Error(err))
		time.Sleep(time.Second)
		return
	}

	for _, stream := range streams {
		if stream.Stream != q.streamKey {
			continue
		}
		for _, msg := range stream.Messages {
			if d := q.newDelivery(ctx, msg); d != nil {
				select {
				case out <- *d:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// shouldProcessMessage acks and drops a re-claimed entry that exceeded MaxRetryCount.
func (q *RedisStreamMailQueue) shouldProcessMessage(ctx context.Context, messageID string) bool {
	n, err := q.retryCount(ctx, messageID)
	if err != nil {
		logger.WithComponent("mq").Warn("Read retry count failed", zap.String("message_id", messageID), zap.Error(err))
		return true
	}
	if n >= q.cfg.MaxRetryCount {
		logger.WithComponent("mq").Warn("Discard poison message",
			zap.String("message_id", messageID),
			zap.Int("retries", n),
			zap.Int("max_retries", q.cfg.MaxRetryCount),
		)
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, messageID).Err()
		return false
	}
	return true
}

func (q *RedisStreamMailQueue) retryCount(ctx context.Context, messageID string) (int, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.streamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return int(pending[0].RetryCount), nil
}

func (q *RedisStreamMailQueue) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   q.streamKey,
				Group:    q.groupName,
				Consumer: q.consumerName,
				MinIdle:  q.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && !errors.Is(err, redis.Nil) {
				logger.WithComponent("mq").Error("XAutoClaim failed", zap.Error(err))
				continue
			}
			if nextID != "" && nextID != "0-0" {
				startID = nextID
			} else {
				startID = "0-0"
			}

			for _, msg := range claimed {
				if !q.shouldProcessMessage(ctx, msg.ID) {
					continue
				}
				if d := q.newDelivery(ctx, msg); d != nil {
					select {
					case out <- *d:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}
}

// newDelivery decodes a stream entry. Undecodable entries are acked and dropped.
func (q *RedisStreamMailQueue) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	log := logger.WithComponent("mq")
	msgID := msg.ID
	// acks outlive the read loop: a worker finishing during shutdown must still settle
	ackCtx := context.WithoutCancel(ctx)

	raw, ok := msg.Values[mailPayloadField].(string)
	var job model.MailJob
	if !ok || json.Unmarshal([]byte(raw), &job) != nil {
		log.Warn("Drop undecodable mail message", zap.String("message_id", msgID))
		_ = q.client.XAck(ackCtx, q.streamKey, q.groupName, msgID).Err()
		return nil
	}

	return &Delivery{
		Data: &job,
		Ack: func() {
			if err := q.client.XAck(ackCtx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// left in the pending list; XAUTOCLAIM picks it up after ClaimMinIdleTime
				log.Info("Mail job nacked, will retry",
					zap.String("message_id", msgID),
					zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime),
				)
				return
			}
			if err := q.client.XAck(ackCtx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck discard failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
	}
}
