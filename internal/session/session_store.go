package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	authenticatedField = "isAuthenticated"
	authenticatedValue = "true"
)

// FlagKey is the Redis key holding a session's authenticated flag.
func FlagKey(sessionID string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, authenticatedField)
}

//go:generate mockgen -source=session_store.go -destination=mock/session_store_mock.go -package=mock
type Store interface {
	MarkAuthenticated(ctx context.Context, sessionID string, ttl time.Duration) error
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) MarkAuthenticated(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, FlagKey(sessionID), authenticatedValue, ttl).Err()
}

func (s *redisStore) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	v, err := s.rdb.Get(ctx, FlagKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == authenticatedValue, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, FlagKey(sessionID)).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore keeps flags in process memory; used when no Redis is configured.
func NewMemoryStore(now func() time.Time) Store {
	if now == nil {
		now = time.Now
	}
	return &memoryStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *memoryStore) MarkAuthenticated(_ context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{value: authenticatedValue}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[FlagKey(sessionID)] = e
	return nil
}

func (s *memoryStore) IsAuthenticated(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FlagKey(sessionID)
	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	return e.value == authenticatedValue, nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, FlagKey(sessionID))
	return nil
}
