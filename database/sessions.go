package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"submitserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisSessions はセッションを "session:<uuid>" キーでRedisに保存します。
type RedisSessions struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessions(rdb *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create は新しいセッションIDを発行して保存します。
func (s *RedisSessions) Create(ctx context.Context, userID uint) (models.Session, error) {
	session := models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return session, err
	}
	if err := s.rdb.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return session, fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return session, nil
}

// Get はセッションを返します。期限切れまたは存在しない場合は redis.Nil を含むエラーです。
func (s *RedisSessions) Get(ctx context.Context, id string) (models.Session, error) {
	var session models.Session
	if id == "" {
		return session, fmt.Errorf("session id is empty: %w", redis.Nil)
	}
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal(raw, &session); err != nil {
		return session, fmt.Errorf("セッション情報のデコードに失敗しました: %w", err)
	}
	return session, nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// TTL はセッションの有効期間です。
func (s *RedisSessions) TTL() time.Duration {
	return s.ttl
}
