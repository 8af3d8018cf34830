package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps server-side session state: session id -> user id
type SessionStore interface {
	Create(ctx context.Context, userID int, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, sid string) (int, error)
	Destroy(ctx context.Context, sid string) error
	Ping(ctx context.Context) error
	Name() string
}

type memorySession struct {
	userID    int
	expiresAt time.Time
}

// MemorySessionStore holds sessions in process memory
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Create starts a session for userID
func (m *MemorySessionStore) Create(_ context.Context, userID int, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = memorySession{userID: userID, expiresAt: m.now().Add(ttl)}
	return sid, nil
}

// Lookup resolves a session id, dropping it if expired
func (m *MemorySessionStore) Lookup(_ context.Context, sid string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !m.now().Before(s.expiresAt) {
		delete(m.sessions, sid)
		return 0, ErrSessionNotFound
	}
	return s.userID, nil
}

// Destroy ends a session. Unknown ids are not an error.
func (m *MemorySessionStore) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// Ping always succeeds
func (m *MemorySessionStore) Ping(context.Context) error { return nil }

// Name identifies the backend in health output
func (m *MemorySessionStore) Name() string { return "memory" }

// Sweep removes expired sessions and returns how many were dropped
func (m *MemorySessionStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for sid, s := range m.sessions {
		if !now.Before(s.expiresAt) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n
}

// Start sweeps expired sessions every interval until ctx is cancelled
func (m *MemorySessionStore) Start(ctx context.Context, interval time.Duration, logger *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Debugw("Expired sessions removed", "count", n)
			}
		}
	}
}

const redisSessionPrefix = "ewers:sess:"

// RedisSessionStore keeps sessions in Redis with native key expiry
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore connects to the Redis instance at url
func NewRedisSessionStore(url string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisSessionStore{client: redis.NewClient(opts)}, nil
}

// Create starts a session for userID
func (r *RedisSessionStore) Create(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	if err := r.client.Set(ctx, redisSessionPrefix+sid, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

// Lookup resolves a session id
func (r *RedisSessionStore) Lookup(ctx context.Context, sid string) (int, error) {
	val, err := r.client.Get(ctx, redisSessionPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sid, err)
	}
	return userID, nil
}

// Destroy ends a session
func (r *RedisSessionStore) Destroy(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, redisSessionPrefix+sid).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Name identifies the backend in health output
func (r *RedisSessionStore) Name() string { return "redis" }

// Close releases the connection pool
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}
