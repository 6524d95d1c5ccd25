package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"attar/internal/domain"
)

// Data документ сессии одного браузера: корзина и идентификаторы входа.
// Корзина живёт только здесь; истечение TTL или рестарт Redis её теряет.
type Data struct {
	Cart       []domain.CartLine `json:"cart,omitempty"`
	CustomerID string            `json:"customer_id,omitempty"`
	AdminID    string            `json:"admin_id,omitempty"`
}

// Store хранит сессии в Redis по ключу session:<sid>
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Get возвращает сессию; отсутствующий ключ — это пустая сессия, не ошибка
func (s *Store) Get(ctx context.Context, sid string) (*Data, error) {
	raw, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &d, nil
}

// Save записывает сессию целиком и продлевает TTL
func (s *Store) Save(ctx context.Context, sid string, d *Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sid), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete удаляет сессию; повторное удаление не ошибка
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
