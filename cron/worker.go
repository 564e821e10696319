package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/config"
	outboxRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/outbox"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

const (
	requeueSweepInterval = 2 * time.Minute
	expirySweepInterval  = time.Minute
	requeueBatchSize     = 100
)

// InitOutboxWorker runs the async delivery worker in background. It drains
// outbox rows handed to it as tasks, requeues rows whose task got lost, and
// sweeps stale pending fees when a TTL is configured.
func InitOutboxWorker(repo outboxRepo.OutboxRepository, sender notification.Sender, client *asynq.Client, engagement marketplace.Service) {
	logger := utils.GetLogger().Named("outbox-worker")

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeOutboxDeliver, handleDeliverTask(repo, sender, logger))

	go monitorRedisConnection(logger)
	go runRequeueSweep(repo, client, logger)
	go runFeeExpirySweep(engagement, logger)

	go func() {
		logger.Info("starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("max worker start attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDeliverTask(repo outboxRepo.OutboxRepository, sender notification.Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.DeliverPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid delivery payload", zap.Error(err))
			return err
		}

		msg, err := repo.Get(ctx, p.MessageID)
		if err != nil {
			logger.Error("outbox row not found", zap.String("messageId", p.MessageID), zap.Error(err))
			return err
		}
		if msg.Status == models.OutboxStatusDelivered {
			return nil
		}

		if err := sender.Send(ctx, msg.PrincipalID, msg.EventType, msg.Payload); err != nil {
			logger.Warn("delivery failed",
				zap.String("messageId", msg.ID),
				zap.String("eventType", msg.EventType),
				zap.Error(err))
			if markErr := repo.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
				logger.Error("failed to mark outbox row failed", zap.String("messageId", msg.ID), zap.Error(markErr))
			}
			return err
		}
		return repo.MarkDelivered(ctx, msg.ID)
	}
}

// runRequeueSweep re-enqueues delivery tasks for rows still marked enqueued,
// covering tasks lost between the outbox write and the asynq enqueue.
func runRequeueSweep(repo outboxRepo.OutboxRepository, client *asynq.Client, logger *zap.Logger) {
	ticker := time.NewTicker(requeueSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		rows, err := repo.ListByStatus(ctx, models.OutboxStatusEnqueued, requeueBatchSize)
		if err != nil {
			logger.Warn("requeue sweep failed to list rows", zap.Error(err))
			cancel()
			continue
		}
		for _, row := range rows {
			body, err := json.Marshal(notification.DeliverPayload{MessageID: row.ID})
			if err != nil {
				continue
			}
			if _, err := client.Enqueue(asynq.NewTask(notification.TypeOutboxDeliver, body)); err != nil {
				logger.Warn("requeue failed", zap.String("messageId", row.ID), zap.Error(err))
			}
		}
		cancel()
	}
}

// runFeeExpirySweep expires stale pending fees and releases their request
// selections. Disabled when no TTL is configured.
func runFeeExpirySweep(engagement marketplace.Service, logger *zap.Logger) {
	ttlMin := config.AppConfig.ReferralFeeTTLMin
	if ttlMin <= 0 {
		logger.Info("fee expiry sweep disabled")
		return
	}
	ttl := time.Duration(ttlMin) * time.Minute

	ticker := time.NewTicker(expirySweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		expired, err := engagement.ExpireStaleFees(ctx, ttl)
		if err != nil {
			logger.Warn("fee expiry sweep failed", zap.Error(err))
		} else if expired > 0 {
			logger.Info("expired stale fees", zap.Int("count", expired))
		}
		cancel()
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
