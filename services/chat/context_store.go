// File: services/chat/context_store.go
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// RedisContextStore keeps conversation context in Redis, for deployments
// where the widget load should survive a process restart.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*Context, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return &Context{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx Context
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, chatCtx *Context) error {
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, chatContextPrefix+sessionID).Err()
}

// MemoryContextStore is the default store: a mutex-guarded map with lazy
// expiry, good enough for the single-process file-backed deployment.
type MemoryContextStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	chatCtx   *Context
	expiresAt time.Time
}

func NewMemoryContextStore(ttl time.Duration) *MemoryContextStore {
	return &MemoryContextStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryContextStore) Get(ctx context.Context, sessionID string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return &Context{}, nil
	}
	// Callers mutate Messages outside the lock, so hand out a copy; the
	// Redis store gets the same isolation from unmarshalling fresh.
	cp := *entry.chatCtx
	cp.Messages = append([]Message(nil), entry.chatCtx.Messages...)
	return &cp, nil
}

func (s *MemoryContextStore) Set(ctx context.Context, sessionID string, chatCtx *Context) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[sessionID] = memoryEntry{chatCtx: chatCtx, expiresAt: now.Add(s.ttl)}
	return nil
}

// sweepLocked drops expired sessions so abandoned widget sessions do not
// accumulate. Runs at most once per TTL window.
func (s *MemoryContextStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryContextStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
