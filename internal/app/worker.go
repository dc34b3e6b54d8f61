package app

import (
	"context"
	"fmt"
	"time"

	"go-roster/internal/config"
	"go-roster/internal/messaging/kafka"
	"go-roster/internal/messaging/kafka/producer"
	"go-roster/internal/storage"

	"go.uber.org/zap"
)

// startOutboxWorker runs the outbox drain loop next to the HTTP server. Events
// left in kv by a previous run are drained first. The returned stop cancels the
// loop and waits for its final drain.
func startOutboxWorker(
	kv storage.KV,
	writer producer.MessageWriter,
	cfg config.KafkaConfig,
	logger *zap.Logger,
) (*producer.OutboxPublisher, func(context.Context), error) {
	outboxRepo, err := kafka.NewOutboxRepository(context.Background(), kv, cfg.OutboxCapacity, time.Now)
	if err != nil {
		return nil, nil, fmt.Errorf("open outbox: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			writer,
			logger,
			cfg.PollInterval,
		)
	}()

	stop := func(waitCtx context.Context) {
		cancel()
		select {
		case <-done:
		case <-waitCtx.Done():
			logger.Warn("outbox worker did not stop in time")
		}
	}

	return producer.NewOutboxPublisher(outboxRepo), stop, nil
}
