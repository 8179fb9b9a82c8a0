package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session id is unknown, expired, or revoked.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the server-side half of each login session. Logout deletes
// the record, which kills the matching token even before its expiry.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, clinicianID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

type memorySession struct {
	clinicianID uint
	expiresAt   time.Time
}

// MemorySessionStore is the single-process fallback used when no Redis address
// is configured. Expiry is enforced on read.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
	}
}

func (s *MemorySessionStore) Put(_ context.Context, sessionID string, clinicianID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{
		clinicianID: clinicianID,
		expiresAt:   time.Now().Add(ttl),
	}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (uint, error) {
	s.mu.RLock()
	session, exists := s.sessions[sessionID]
	s.mu.RUnlock()
	if !exists {
		return 0, ErrSessionNotFound
	}
	if time.Now().After(session.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return 0, ErrSessionNotFound
	}
	return session.clinicianID, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

const sessionKeyPrefix = "session:"

// RedisSessionStore backs sessions with Redis so they survive restarts and can
// be shared by multiple server instances.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(addr, password string) (*RedisSessionStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &RedisSessionStore{rdb: rdb}, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, clinicianID uint, ttl time.Duration) error {
	value := strconv.FormatUint(uint64(clinicianID), 10)
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, value, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (uint, error) {
	value, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	clinicianID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return uint(clinicianID), nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	deleted, err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}
