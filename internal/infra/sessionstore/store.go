package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

const keyPrefix = "booking:session:"

// Store хранилище сессий бронирования в Redis
// Сессия хранится как JSON; TTL продлевается при каждом сохранении,
// брошенные сессии истекают сами
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище сессий
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Save сохраняет сессию с обновлением TTL
func (s *Store) Save(ctx context.Context, session *workflow.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sessionstore: failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+session.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: failed to save session: %w", err)
	}

	return nil
}

// Get возвращает сессию по ID
// Отсутствующий или истекший ключ - workflow.ErrSessionNotFound
func (s *Store) Get(ctx context.Context, id string) (*workflow.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, workflow.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sessionstore: failed to get session: %w", err)
	}

	var session workflow.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("sessionstore: failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete удаляет сессию
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("sessionstore: failed to delete session: %w", err)
	}
	return nil
}
