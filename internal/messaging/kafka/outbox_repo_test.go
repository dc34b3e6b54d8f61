package kafka_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-roster/internal/messaging/kafka"
	"go-roster/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func pending(id string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:      id,
		Topic:   "roster.staff.lifecycle.v1",
		Payload: []byte(`{}`),
		Status:  kafka.OutboxStatusPending,
	}
}

func newOutbox(t *testing.T, kv storage.KV, capacity int, now func() time.Time) kafka.OutboxRepository {
	t.Helper()
	repo, err := kafka.NewOutboxRepository(context.Background(), kv, capacity, now)
	require.NoError(t, err)
	return repo
}

type failingKV struct {
	*storage.MemoryKV
	putErr error
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func TestOutbox_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	repo := newOutbox(t, storage.NewMemoryKV(), 0, clk.Now)

	require.NoError(t, repo.Create(ctx, pending("a")))
	require.NoError(t, repo.Create(ctx, pending("b")))
	require.NoError(t, repo.Create(ctx, pending("c")))

	due, err := repo.ListPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].ID)
	assert.Equal(t, clk.now, due[0].CreatedAt)

	require.NoError(t, repo.MarkSent(ctx, "a"))
	require.NoError(t, repo.MarkFailed(ctx, "b", strings.Repeat("x", 600)))

	due, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "c", due[0].ID)

	clk.now = clk.now.Add(15 * time.Second)
	due, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "b", due[0].ID)
	assert.Equal(t, kafka.OutboxStatusFailed, due[0].Status)
	assert.Equal(t, 1, due[0].RetryCount)
	assert.Len(t, due[0].LastError, 500)

	assert.ErrorIs(t, repo.MarkSent(ctx, "a"), kafka.ErrOutboxUnknown)
}

func TestOutbox_BackoffGrows(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	repo := newOutbox(t, storage.NewMemoryKV(), 0, clk.Now)
	require.NoError(t, repo.Create(ctx, pending("a")))

	require.NoError(t, repo.MarkFailed(ctx, "a", "down"))
	require.NoError(t, repo.MarkFailed(ctx, "a", "down"))

	clk.now = clk.now.Add(29 * time.Second)
	due, _ := repo.ListPending(ctx, 10)
	assert.Empty(t, due)

	clk.now = clk.now.Add(time.Second)
	due, _ = repo.ListPending(ctx, 10)
	assert.Len(t, due, 1)
}

func TestOutbox_Capacity(t *testing.T) {
	ctx := context.Background()
	repo := newOutbox(t, storage.NewMemoryKV(), 1, nil)

	require.NoError(t, repo.Create(ctx, pending("a")))
	assert.ErrorIs(t, repo.Create(ctx, pending("b")), kafka.ErrOutboxFull)
}

func TestOutbox_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()

	repo := newOutbox(t, kv, 0, clk.Now)
	require.NoError(t, repo.Create(ctx, pending("a")))
	require.NoError(t, repo.Create(ctx, pending("b")))
	require.NoError(t, repo.Create(ctx, pending("c")))
	require.NoError(t, repo.MarkSent(ctx, "a"))
	require.NoError(t, repo.MarkFailed(ctx, "b", "broker down"))

	reopened := newOutbox(t, kv, 0, clk.Now)

	due, err := reopened.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "c", due[0].ID)
	assert.Equal(t, []byte(`{}`), due[0].Payload)
	assert.True(t, clk.now.Equal(due[0].CreatedAt))

	clk.now = clk.now.Add(15 * time.Second)
	due, err = reopened.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "b", due[0].ID)
	assert.Equal(t, 1, due[0].RetryCount)
	assert.Equal(t, "broker down", due[0].LastError)
}

func TestOutbox_CorruptSnapshot(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(context.Background(), kafka.OutboxKey, []byte("{not json")))

	_, err := kafka.NewOutboxRepository(context.Background(), kv, 0, nil)

	assert.Error(t, err)
}

func TestOutbox_SaveFailureKeepsQueue(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	repo := newOutbox(t, kv, 0, nil)
	require.NoError(t, repo.Create(ctx, pending("a")))

	kv.putErr = errors.New("disk full")
	assert.Error(t, repo.Create(ctx, pending("b")))
	assert.Error(t, repo.MarkSent(ctx, "a"))

	due, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].ID)
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, kafka.ValidateOutboxEvent(pending("a")))

	noID := pending("")
	assert.Error(t, kafka.ValidateOutboxEvent(noID))

	noTopic := pending("a")
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	empty := pending("a")
	empty.Payload = nil
	assert.Error(t, kafka.ValidateOutboxEvent(empty))

	bad := pending("a")
	bad.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(bad))
}
