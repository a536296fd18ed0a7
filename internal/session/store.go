// internal/session/store.go

// Package session persists conversation contexts between turns.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/models"
)

// Store loads and saves one conversation context per session ID.
// Get returns an empty context for unknown sessions so a first turn
// needs no special casing.
type Store interface {
	Get(ctx context.Context, sessionID string) (models.ConversationContext, error)
	Save(ctx context.Context, conv models.ConversationContext) error
	Delete(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

// RedisStore keeps contexts as JSON values with a TTL refreshed on save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (models.ConversationContext, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return models.ConversationContext{SessionID: sessionID}, nil
	}
	if err != nil {
		return models.ConversationContext{}, errors.NewSessionStoreFailedError(err)
	}

	var conv models.ConversationContext
	if err := json.Unmarshal([]byte(raw), &conv); err != nil {
		return models.ConversationContext{}, errors.NewSessionStoreFailedError(err)
	}
	return conv, nil
}

func (s *RedisStore) Save(ctx context.Context, conv models.ConversationContext) error {
	conv.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(conv)
	if err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	if err := s.client.Set(ctx, keyPrefix+conv.SessionID, raw, s.ttl).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}

// MemoryStore is the single-process default backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.ConversationContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.ConversationContext)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (models.ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if conv, ok := s.sessions[sessionID]; ok {
		return conv, nil
	}
	return models.ConversationContext{SessionID: sessionID}, nil
}

func (s *MemoryStore) Save(_ context.Context, conv models.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.UpdatedAt = time.Now().UTC()
	s.sessions[conv.SessionID] = conv
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
