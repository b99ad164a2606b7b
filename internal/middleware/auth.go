// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yojna-mitra-go/pkg/session"
)

// SessionKey 是存入 Gin 上下文的会话对象的键名。
const SessionKey = "session"

// SessionAuth 创建一个 Gin 中间件，用于基于 Cookie 的会话认证。
// 它从请求 Cookie 中取出签名值并解析会话；未登录访问受保护路由时
// 重定向到登录页，而不是返回 401。
func SessionAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieValue, err := c.Cookie(sessions.CookieName())
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), cookieValue)
		if err != nil {
			// 签名无效、会话过期或已登出，一律回到登录页
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// 将会话对象存储在 context 中，供后续处理函数使用
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession 从 Gin 上下文中取出由 SessionAuth 注入的会话对象。
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
