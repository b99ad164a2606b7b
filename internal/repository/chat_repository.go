package repository

import (
	"gorm.io/gorm"

	"yojna-mitra-go/internal/model"
)

// ChatRepository 定义了按用户持久化聊天记录的操作接口。
type ChatRepository interface {
	// Append 追加一条消息。用户消息与机器人回复是两次独立写入，
	// 不在一个事务中。
	Append(userID uint, sender, message string) error
	// History 按插入顺序返回该用户的全部消息。
	History(userID uint) ([]model.ChatMessage, error)
	// Clear 删除该用户的全部消息，对空历史是无操作。
	Clear(userID uint) error
}

// chatRepository 是 ChatRepository 接口的 GORM 实现。
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Append 向 chat_history 表插入一行消息记录。
func (r *chatRepository) Append(userID uint, sender, message string) error {
	msg := &model.ChatMessage{
		UserID:  userID,
		Sender:  sender,
		Message: message,
	}
	return r.db.Create(msg).Error
}

// History 按主键升序检索该用户的全部消息，主键顺序即插入顺序。
func (r *chatRepository) History(userID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&messages).Error
	return messages, err
}

// Clear 批量删除该用户的全部消息。
func (r *chatRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.ChatMessage{}).Error
}
