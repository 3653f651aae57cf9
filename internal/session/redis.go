// Package session хранит сессии пользователей: id из cookie -> снимок пользователя.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

const keyPrefix = "session:"

// RedisStore реализует ports.SessionStore поверх Redis, срок жизни задаётся TTL ключа
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, logger: logger}
}

// NewRedisClient создаёт клиент и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Create(ctx context.Context, user domain.SessionUser) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+sid, payload, s.ttl).Err(); err != nil {
		s.logger.Error("failed to store session", "user_id", user.ID, "error", err)
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.SessionUser, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}

	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user domain.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn("corrupted session payload, dropping", "error", err)
		_ = s.rdb.Del(ctx, keyPrefix+id).Err()
		return nil, domain.ErrSessionNotFound
	}
	return &user, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
