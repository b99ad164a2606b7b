package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

// memStore 是 Store 的内存实现，用于在没有 Redis 的环境下测试 Manager。
type memStore struct {
	sessions map[string]Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]Session)}
}

func (s *memStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	found := sess
	return &found, nil
}

func (s *memStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestManager(store Store) *Manager {
	return NewManager(store, "test-secret", "ym_session", 1)
}

func TestCreateAndResolve(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)
	ctx := context.Background()

	cookieValue, err := m.Create(ctx, 42)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if cookieValue == "" {
		t.Fatal("Create() returned an empty cookie value")
	}

	sess, err := m.Resolve(ctx, cookieValue)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if sess.UserID != 42 {
		t.Errorf("Resolve() UserID = %d, want 42", sess.UserID)
	}
	if sess.Language != "" {
		t.Errorf("Resolve() Language = %q, want empty", sess.Language)
	}
}

func TestResolveRejectsTamperedCookie(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)
	ctx := context.Background()

	cookieValue, err := m.Create(ctx, 1)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{name: "garbage", value: "not-a-jwt"},
		{name: "truncated", value: cookieValue[:len(cookieValue)-5]},
		{name: "empty", value: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Resolve(ctx, tt.value); err == nil {
				t.Error("Resolve() accepted a tampered cookie")
			}
		})
	}
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	// 用另一个密钥签出的 Cookie 不能通过验证，即便会话记录存在
	other := NewManager(store, "other-secret", "ym_session", 1)
	cookieValue, err := other.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	m := newTestManager(store)
	if _, err := m.Resolve(ctx, cookieValue); err == nil {
		t.Error("Resolve() accepted a cookie signed with a different secret")
	}
}

func TestDestroyInvalidatesReplayedCookie(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)
	ctx := context.Background()

	cookieValue, err := m.Create(ctx, 1)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := m.Destroy(ctx, cookieValue); err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}

	// 签名仍然有效，但服务端记录已删除
	_, err = m.Resolve(ctx, cookieValue)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() after Destroy() error = %v, want ErrNotFound", err)
	}

	// 销毁无效 Cookie 静默返回
	if err := m.Destroy(ctx, "not-a-jwt"); err != nil {
		t.Errorf("Destroy() with invalid cookie error: %v", err)
	}
}

func TestSetLanguagePersists(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)
	ctx := context.Background()

	cookieValue, err := m.Create(ctx, 1)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	sess, err := m.Resolve(ctx, cookieValue)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if err := m.SetLanguage(ctx, sess, "Hindi"); err != nil {
		t.Fatalf("SetLanguage() error: %v", err)
	}

	reloaded, err := m.Resolve(ctx, cookieValue)
	if err != nil {
		t.Fatalf("Resolve() after SetLanguage() error: %v", err)
	}
	if reloaded.Language != "Hindi" {
		t.Errorf("Language = %q, want %q", reloaded.Language, "Hindi")
	}
}
