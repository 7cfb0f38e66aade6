package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSessionTTL is how long an idle wizard session is kept.
const DefaultSessionTTL = 2 * time.Hour

// lockTTL bounds how long a crashed submitter can hold a session lock.
const lockTTL = 2 * time.Minute

var (
	ErrSessionNotFound = errors.New("wizard: session not found")
	ErrSessionLocked   = errors.New("wizard: session is locked by another request")
)

// UnlockFunc releases a session lock.
type UnlockFunc func(ctx context.Context) error

// SessionStore keeps wizard snapshots between HTTP requests.
type SessionStore interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, state State) error
	Delete(ctx context.Context, id string) error
	// Lock grants exclusive use of a session, or ErrSessionLocked.
	Lock(ctx context.Context, id string) (UnlockFunc, error)
	// Locked reports whether another request currently holds the lock.
	Locked(ctx context.Context, id string) (bool, error)
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
	locks    map[string]time.Time
}

type memoryEntry struct {
	state   State
	expires time.Time
}

// NewMemoryStore creates an in-memory store with the given idle TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]time.Time),
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || s.now().After(entry.expires) {
		delete(s.sessions, id)
		return State{}, ErrSessionNotFound
	}
	return entry.state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state State) error {
	if state.ID == "" {
		return errors.New("wizard: session id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = memoryEntry{state: state, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.locks, id)
	return nil
}

func (s *MemoryStore) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if until, ok := s.locks[id]; ok && s.now().Before(until) {
		return nil, ErrSessionLocked
	}
	s.locks[id] = s.now().Add(lockTTL)
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locks, id)
		return nil
	}, nil
}

func (s *MemoryStore) Locked(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.locks[id]
	return ok && s.now().Before(until), nil
}

// RedisStore persists sessions in Redis with a sliding TTL.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("favfare.internal.wizard.store"),
	}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("favfare:wizard:%s", id)
}

func (s *RedisStore) lockKey(id string) string {
	return fmt.Sprintf("favfare:wizard:%s:lock", id)
}

func (s *RedisStore) Load(ctx context.Context, id string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return State{}, ErrSessionNotFound
	}
	if err != nil {
		span.RecordError(err)
		return State{}, fmt.Errorf("wizard: get session: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return State{}, fmt.Errorf("wizard: unmarshal session: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, state State) error {
	if state.ID == "" {
		return errors.New("wizard: session id required")
	}
	ctx, span := s.tracer.Start(ctx, "wizard.save_session")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(state.ID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id), s.lockKey(id)).Err(); err != nil {
		return fmt.Errorf("wizard: delete session: %w", err)
	}
	return nil
}

// releaseLock deletes the lock only if it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *RedisStore) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.lock_session")
	defer span.End()

	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, s.lockKey(id), token, lockTTL).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("wizard: acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrSessionLocked
	}
	return func(ctx context.Context) error {
		if err := releaseLock.Run(ctx, s.redis, []string{s.lockKey(id)}, token).Err(); err != nil {
			return fmt.Errorf("wizard: release lock: %w", err)
		}
		return nil
	}, nil
}

func (s *RedisStore) Locked(ctx context.Context, id string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.lockKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("wizard: check lock: %w", err)
	}
	return n > 0, nil
}

var (
	_ SessionStore = (*MemoryStore)(nil)
	_ SessionStore = (*RedisStore)(nil)
)
