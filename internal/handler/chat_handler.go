package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yojna-mitra-go/internal/middleware"
	"yojna-mitra-go/internal/service"
	"yojna-mitra-go/pkg/log"
	"yojna-mitra-go/pkg/session"
)

// ChatHandler 负责处理聊天页面相关的请求。
type ChatHandler struct {
	chatService service.ChatService
	sessions    *session.Manager
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService, sessions *session.Manager) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		sessions:    sessions,
	}
}

// Chat 渲染当前用户的完整聊天记录。
func (h *ChatHandler) Chat(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	history, err := h.chatService.History(sess.UserID)
	if err != nil {
		log.Errorf("Chat: failed to load history for user %d: %v", sess.UserID, err)
		c.String(http.StatusInternalServerError, "failed to load chat history")
		return
	}

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"History":  history,
		"Language": sess.Language,
	})
}

// PostMessage 处理一次对话轮次的提交。
// 处理完成后重定向回聊天页，避免刷新导致重复提交。
func (h *ChatHandler) PostMessage(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	message := c.PostForm("message")
	if message == "" {
		c.Redirect(http.StatusFound, "/chat")
		return
	}

	if err := h.chatService.PostTurn(c.Request.Context(), sess.UserID, sess.Language, message); err != nil {
		log.Errorf("PostMessage: failed for user %d: %v", sess.UserID, err)
		c.String(http.StatusInternalServerError, "failed to process message")
		return
	}

	c.Redirect(http.StatusFound, "/chat")
}

// NewChat 清空当前用户的聊天记录并跳转回聊天页。
func (h *ChatHandler) NewChat(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.chatService.Clear(sess.UserID); err != nil {
		log.Errorf("NewChat: failed to clear history for user %d: %v", sess.UserID, err)
		c.String(http.StatusInternalServerError, "failed to clear chat history")
		return
	}

	c.Redirect(http.StatusFound, "/chat")
}

// SetLanguage 将语言偏好写入会话并跳转回聊天页。
// 该路由不在认证组内，无会话时静默跳转，由 /chat 的中间件决定去向。
func (h *ChatHandler) SetLanguage(c *gin.Context) {
	language := c.PostForm("language")

	if cookieValue, err := c.Cookie(h.sessions.CookieName()); err == nil {
		if sess, rerr := h.sessions.Resolve(c.Request.Context(), cookieValue); rerr == nil {
			if serr := h.sessions.SetLanguage(c.Request.Context(), sess, language); serr != nil {
				log.Error("SetLanguage: failed to update session", serr)
			}
		}
	}

	c.Redirect(http.StatusFound, "/chat")
}
