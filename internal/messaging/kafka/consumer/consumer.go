package consumer

import (
	"context"
	"encoding/json"

	"go-roster/internal/events"
	"go-roster/internal/shared/audit"
	"go-roster/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeStaffLifecycle turns roster lifecycle events into audit entries until ctx
// is cancelled. Undecodable messages are committed and skipped.
func ConsumeStaffLifecycle(
	ctx context.Context,
	reader MessageReader,
	auditLogger audit.Logger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.staff_lifecycle")
	log.Info("staff lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("staff lifecycle consumer stopped")
				return
			}
			log.Error("fetch staff lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.StaffLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType == "" {
			log.Error("decode staff lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		eventCtx := contextutil.WithRequestID(ctx, event.RequestID)
		eventCtx = contextutil.WithSessionID(eventCtx, event.SessionID)
		auditLogger.Log(eventCtx, audit.Entry{
			Action:  "lifecycle." + event.EventType,
			Message: "staff lifecycle event received",
			Meta: map[string]any{
				"staff_ids":   event.StaffIDs,
				"count":       event.Count,
				"occurred_at": event.OccurredAt,
				"partition":   msg.Partition,
				"offset":      msg.Offset,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit staff lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("staff lifecycle event audited",
			zap.String("event_type", event.EventType),
			zap.Int("count", event.Count),
		)
	}
}
