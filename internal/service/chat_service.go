package service

import (
	"context"
	"fmt"

	"yojna-mitra-go/internal/format"
	"yojna-mitra-go/internal/model"
	"yojna-mitra-go/internal/repository"
	"yojna-mitra-go/pkg/llm"
	"yojna-mitra-go/pkg/log"
)

// aiErrorPrefix 是提供商调用失败时写入聊天记录的占位消息前缀。
const aiErrorPrefix = "⚠️ AI Error: "

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	// PostTurn 处理一个对话轮次：保存用户消息，调用补全接口，
	// 整形后保存机器人回复。提供商失败不作为错误返回，
	// 而是以占位消息的形式写入机器人一侧。
	PostTurn(ctx context.Context, userID uint, language, message string) error
	// History 按提交顺序返回该用户的全部聊天记录。
	History(userID uint) ([]model.ChatMessage, error)
	// Clear 清空该用户的聊天记录。
	Clear(userID uint) error
}

type chatService struct {
	llmClient llm.Client
	chatRepo  repository.ChatRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(llmClient llm.Client, chatRepo repository.ChatRepository) ChatService {
	return &chatService{
		llmClient: llmClient,
		chatRepo:  chatRepo,
	}
}

// PostTurn 依次写入用户消息与机器人回复。两次写入相互独立，
// 期间崩溃会留下一条未应答的用户消息，与既有行为保持一致。
func (s *chatService) PostTurn(ctx context.Context, userID uint, language, message string) error {
	if err := s.chatRepo.Append(userID, model.SenderUser, message); err != nil {
		return fmt.Errorf("failed to save user message: %w", err)
	}

	reply, err := s.llmClient.Complete(ctx, message, language)
	if err != nil {
		// 提供商失败转换为占位消息照常入库，方便用户在界面上看到
		log.Error("LLM completion failed", err)
		reply = aiErrorPrefix + err.Error()
	} else {
		reply = format.Normalize(reply)
	}

	if err := s.chatRepo.Append(userID, model.SenderBot, reply); err != nil {
		return fmt.Errorf("failed to save bot message: %w", err)
	}
	return nil
}

// History 返回该用户的全部聊天记录。
func (s *chatService) History(userID uint) ([]model.ChatMessage, error) {
	return s.chatRepo.History(userID)
}

// Clear 清空该用户的聊天记录，空历史时不报错。
func (s *chatService) Clear(userID uint) error {
	return s.chatRepo.Clear(userID)
}
