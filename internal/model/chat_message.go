package model

// 消息发送方的取值。
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage 对应于数据库中的 'chat_history' 表，代表一条聊天记录。
// 每个对话轮次写入两行：一行用户消息，一行机器人回复。
// 消息顺序由自增主键隐含，不单独记录时间戳。
type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// UserID 指向所属用户。引用完整性由服务层保证：
	// 写入方只会传入经会话验证的用户 ID。
	UserID uint `gorm:"index;not null" json:"userId"`
	// Sender 为 "user" 或 "bot"。
	Sender  string `gorm:"type:varchar(16);not null" json:"sender"`
	Message string `gorm:"type:text;not null" json:"message"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ChatMessage) TableName() string {
	return "chat_history"
}
