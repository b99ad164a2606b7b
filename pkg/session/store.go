// Package session 提供了基于签名 Cookie 与 Redis 的服务端会话管理。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound 表示会话不存在或已过期（包括主动登出后被删除的情况）。
var ErrNotFound = errors.New("session not found")

// Session 代表一次已登录用户的服务端会话。
// Language 为用户选择的回复语言偏好，可以为空。
type Session struct {
	ID       string `json:"-"`
	UserID   uint   `json:"user_id"`
	Language string `json:"language,omitempty"`
}

// Store 定义了会话记录的持久化操作。
type Store interface {
	Save(ctx context.Context, sess *Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	redisClient *redis.Client
}

// NewRedisStore 创建一个由 Redis 支撑的会话存储。
func NewRedisStore(redisClient *redis.Client) Store {
	return &redisStore{redisClient: redisClient}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Save 将会话以 JSON 形式写入 Redis，并设置过期时间。
func (s *redisStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redisClient.Set(ctx, sessionKey(sess.ID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Get 从 Redis 读取会话记录，不存在时返回 ErrNotFound。
func (s *redisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	jsonData, err := s.redisClient.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(jsonData), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	sess.ID = sessionID
	return &sess, nil
}

// Delete 删除会话记录。删除不存在的会话不是错误。
func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, sessionKey(sessionID)).Err()
}
