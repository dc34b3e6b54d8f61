package producer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-roster/internal/events"
	"go-roster/internal/messaging/kafka"
	"go-roster/internal/messaging/kafka/mock"
	"go-roster/internal/messaging/kafka/producer"
	"go-roster/internal/storage"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	written  []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("broker unavailable")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) messages() []kafkago.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafkago.Message(nil), w.written...)
}

func newOutbox(t *testing.T) kafka.OutboxRepository {
	t.Helper()
	repo, err := kafka.NewOutboxRepository(context.Background(), storage.NewMemoryKV(), 0, nil)
	require.NoError(t, err)
	return repo
}

func TestOutboxPublisher_QueuesLifecycleEvent(t *testing.T) {
	ctx := context.Background()
	repo := newOutbox(t)
	publisher := producer.NewOutboxPublisher(repo)

	event := events.StaffLifecycleEvent{
		EventType: events.StaffCreated,
		RequestID: "req-1",
		StaffIDs:  []string{"id-1"},
		Count:     1,
	}
	require.NoError(t, publisher.PublishStaffLifecycle(ctx, event))

	due, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, events.StaffLifecycleTopic, due[0].Topic)
	assert.Equal(t, "id-1", due[0].AggregateID)
	assert.Equal(t, "staff", due[0].AggregateType)
	assert.Equal(t, events.StaffCreated, due[0].EventType)

	var decoded events.StaffLifecycleEvent
	require.NoError(t, json.Unmarshal(due[0].Payload, &decoded))
	assert.Equal(t, []string{"id-1"}, decoded.StaffIDs)
}

func TestProcessOutboxEvents_SendsAndRetries(t *testing.T) {
	repo := newOutbox(t)
	publisher := producer.NewOutboxPublisher(repo)
	writer := &fakeWriter{}

	require.NoError(t, publisher.PublishStaffLifecycle(context.Background(), events.StaffLifecycleEvent{
		EventType: events.StaffDeleted,
		StaffIDs:  []string{"id-9"},
		Count:     1,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, writer, zap.NewNop(), 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(writer.messages()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	msg := writer.messages()[0]
	assert.Equal(t, events.StaffLifecycleTopic, msg.Topic)
	assert.Equal(t, "id-9", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, events.StaffDeleted, string(msg.Headers[0].Value))

	left, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestProcessOutboxEvents_FailedWriteIsMarked(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failures: 100}

	event := kafka.OutboxEvent{ID: "o-1", Topic: events.StaffLifecycleTopic, Payload: []byte(`{}`)}
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return([]kafka.OutboxEvent{event}, nil).MinTimes(1)
	repo.EXPECT().MarkFailed(gomock.Any(), "o-1", "broker unavailable").Return(nil).MinTimes(1)
	repo.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	producer.ProcessOutboxEvents(ctx, repo, writer, zap.NewNop(), 5*time.Millisecond)
}
