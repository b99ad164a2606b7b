package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager 负责会话的创建、解析与销毁。
// Cookie 中携带的是一个 HS256 签名的 JWT，其中只包含服务端会话 ID；
// 会话的真实内容（用户 ID、语言偏好）始终保存在 Store 中，
// 因此登出删除存储记录后，重放旧 Cookie 不再有效。
type Manager struct {
	store      Store
	secretKey  []byte
	ttl        time.Duration
	cookieName string
}

// cookieClaims 定义了写入会话 Cookie 的 JWT 声明。
type cookieClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// NewManager 创建一个新的 Manager 实例。
// secret: 用于签名 Cookie 的密钥字符串，必须为不可预测的值。
// expireHours: 会话的有效期（小时），同时作用于 JWT 与存储记录。
func NewManager(store Store, secret, cookieName string, expireHours int) *Manager {
	return &Manager{
		store:      store,
		secretKey:  []byte(secret),
		ttl:        time.Hour * time.Duration(expireHours),
		cookieName: cookieName,
	}
}

// CookieName 返回会话 Cookie 的名称。
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTL 返回会话的有效期。
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create 为指定用户创建一个新会话，返回应写入 Cookie 的签名值。
func (m *Manager) Create(ctx context.Context, userID uint) (string, error) {
	sess := &Session{
		ID:     generateSessionID(),
		UserID: userID,
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", err
	}

	claims := cookieClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Resolve 验证 Cookie 值并加载对应的会话。
// 签名无效、JWT 过期或存储记录缺失都会返回错误。
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*Session, error) {
	sessionID, err := m.verifyCookie(cookieValue)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, sessionID)
}

// SetLanguage 更新会话中的语言偏好并刷新存储记录。
func (m *Manager) SetLanguage(ctx context.Context, sess *Session, language string) error {
	sess.Language = language
	return m.store.Save(ctx, sess, m.ttl)
}

// Destroy 销毁 Cookie 值对应的会话。Cookie 无效时静默返回。
func (m *Manager) Destroy(ctx context.Context, cookieValue string) error {
	sessionID, err := m.verifyCookie(cookieValue)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}

// verifyCookie 解析并验证 Cookie 中的 JWT，返回其中的会话 ID。
func (m *Manager) verifyCookie(cookieValue string) (string, error) {
	token, err := jwt.ParseWithClaims(cookieValue, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 检查签名方法是否为 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", err
	}
	if claims, ok := token.Claims.(*cookieClaims); ok && token.Valid {
		return claims.SessionID, nil
	}
	return "", errors.New("invalid session cookie")
}

// generateSessionID 生成一个 32 字节的随机十六进制会话 ID。
func generateSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand 失败说明运行环境已不可用
		panic(err)
	}
	return hex.EncodeToString(bytes)
}
