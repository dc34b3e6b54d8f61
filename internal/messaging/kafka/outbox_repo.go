package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go-roster/internal/storage"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const (
	maxErrorMessage = 500
	retryStep       = 15 * time.Second
	maxRetrySteps   = 10

	// OutboxKey is the storage key holding the queued events.
	OutboxKey = "outbox"
)

var (
	ErrOutboxFull    = errors.New("outbox: queue is full")
	ErrOutboxUnknown = errors.New("outbox: unknown event")
)

type OutboxEvent struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id,omitempty"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	EventType     string    `json:"event_type"`
	Topic         string    `json:"topic"`
	Payload       []byte    `json:"payload"`
	Status        string    `json:"status"`
	RetryCount    int       `json:"retry_count"`
	LastError     string    `json:"last_error,omitempty"`
	NextRetryAt   time.Time `json:"next_retry_at"`
	CreatedAt     time.Time `json:"created_at"`
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

// OutboxRepository queues events between a request and the publishing worker.
type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// kvOutbox keeps unsent events in creation order and rewrites the whole queue
// under OutboxKey on every change. Sent events are dropped.
type kvOutbox struct {
	mu       sync.Mutex
	kv       storage.KV
	events   []OutboxEvent
	capacity int
	now      func() time.Time
}

// NewOutboxRepository loads any events queued by a previous run from kv.
func NewOutboxRepository(ctx context.Context, kv storage.KV, capacity int, now func() time.Time) (OutboxRepository, error) {
	if now == nil {
		now = time.Now
	}
	r := &kvOutbox{kv: kv, capacity: capacity, now: now}

	raw, err := kv.Get(ctx, OutboxKey)
	if errors.Is(err, storage.ErrNotFound) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load outbox: %w", err)
	}
	if err := json.Unmarshal(raw, &r.events); err != nil {
		return nil, fmt.Errorf("decode outbox: %w", err)
	}
	return r, nil
}

// commit persists next and only then makes it the live queue. Caller holds mu.
func (r *kvOutbox) commit(ctx context.Context, next []OutboxEvent) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode outbox: %w", err)
	}
	if err := r.kv.Put(ctx, OutboxKey, raw); err != nil {
		return fmt.Errorf("save outbox: %w", err)
	}
	r.events = next
	return nil
}

func (r *kvOutbox) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity > 0 && len(r.events) >= r.capacity {
		return ErrOutboxFull
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}
	event.Payload = append([]byte(nil), event.Payload...)
	return r.commit(ctx, append(slices.Clone(r.events), event))
}

func (r *kvOutbox) ListPending(_ context.Context, limit int) ([]OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	out := make([]OutboxEvent, 0, min(limit, len(r.events)))
	for _, e := range r.events {
		if len(out) >= limit {
			break
		}
		if e.Status != OutboxStatusPending && e.Status != OutboxStatusFailed {
			continue
		}
		if !e.NextRetryAt.IsZero() && e.NextRetryAt.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *kvOutbox) MarkSent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrOutboxUnknown, id)
	}
	return r.commit(ctx, slices.Delete(slices.Clone(r.events), i, i+1))
}

// MarkFailed backs the event off linearly, 15s per attempt up to ten steps.
func (r *kvOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrOutboxUnknown, id)
	}
	if len(reason) > maxErrorMessage {
		reason = reason[:maxErrorMessage]
	}

	next := slices.Clone(r.events)
	e := &next[i]
	e.Status = OutboxStatusFailed
	e.RetryCount++
	e.LastError = reason
	e.NextRetryAt = r.now().Add(time.Duration(min(e.RetryCount, maxRetrySteps)) * retryStep)
	return r.commit(ctx, next)
}

func (r *kvOutbox) indexOf(id string) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
