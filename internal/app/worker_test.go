package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-roster/internal/config"
	"go-roster/internal/messaging/kafka"
	"go-roster/internal/storage"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafkago.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

func TestStartOutboxWorker_DrainsEventsFromPreviousRun(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	previous, err := kafka.NewOutboxRepository(ctx, kv, 0, nil)
	require.NoError(t, err)
	require.NoError(t, previous.Create(ctx, kafka.OutboxEvent{
		ID:          "left-over",
		AggregateID: "id-1",
		Topic:       "roster.staff.lifecycle.v1",
		Payload:     []byte(`{}`),
		Status:      kafka.OutboxStatusPending,
	}))

	writer := &recordingWriter{}
	cfg := config.KafkaConfig{PollInterval: 5 * time.Millisecond}
	publisher, stop, err := startOutboxWorker(kv, writer, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, publisher)

	require.Eventually(t, func() bool { return writer.count() == 1 }, time.Second, 5*time.Millisecond)
	stop(ctx)

	reopened, err := kafka.NewOutboxRepository(ctx, kv, 0, nil)
	require.NoError(t, err)
	due, err := reopened.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestStartOutboxWorker_CorruptSnapshot(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(context.Background(), kafka.OutboxKey, []byte("nope")))

	_, _, err := startOutboxWorker(kv, &recordingWriter{}, config.KafkaConfig{}, zap.NewNop())

	assert.Error(t, err)
}
