// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yojna-mitra-go/internal/service"
	"yojna-mitra-go/pkg/log"
	"yojna-mitra-go/pkg/session"
)

// AuthHandler 负责处理注册、登录、登出与首页跳转。
type AuthHandler struct {
	userService service.UserService
	sessions    *session.Manager
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// Home 处理首页请求：已登录跳转聊天页，否则跳转登录页。
func (h *AuthHandler) Home(c *gin.Context) {
	cookieValue, err := c.Cookie(h.sessions.CookieName())
	if err == nil {
		if _, rerr := h.sessions.Resolve(c.Request.Context(), cookieValue); rerr == nil {
			c.Redirect(http.StatusFound, "/chat")
			return
		}
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowRegister 渲染注册表单。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// Register 处理注册表单提交。
// 用户名冲突按既有行为返回内联提示字符串，不重新渲染表单。
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.String(http.StatusBadRequest, "⚠ Username and password are required")
		return
	}

	if _, err := h.userService.Register(username, password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.String(http.StatusConflict, "⚠ Username already exists!")
			return
		}
		log.Errorf("Register: failed for '%s': %v", username, err)
		c.String(http.StatusInternalServerError, "registration failed")
		return
	}

	log.Infof("User '%s' registered successfully", username)
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin 渲染登录表单。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// Login 处理登录表单提交，成功后建立会话并写入 Cookie。
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.userService.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// 用户不存在与密码错误使用同一条提示
			c.String(http.StatusUnauthorized, "⚠ Invalid username or password")
			return
		}
		log.Errorf("Login: failed for '%s': %v", username, err)
		c.String(http.StatusInternalServerError, "login failed")
		return
	}

	cookieValue, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("Login: failed to create session", err)
		c.String(http.StatusInternalServerError, "login failed")
		return
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(h.sessions.CookieName(), cookieValue, maxAge, "/", "", false, true)

	log.Infof("User '%s' logged in successfully", username)
	c.Redirect(http.StatusFound, "/chat")
}

// Logout 销毁会话、清除 Cookie 并跳转到登录页。
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookieValue, err := c.Cookie(h.sessions.CookieName()); err == nil {
		if derr := h.sessions.Destroy(c.Request.Context(), cookieValue); derr != nil {
			log.Error("Logout: failed to destroy session", derr)
		}
	}
	c.SetCookie(h.sessions.CookieName(), "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
