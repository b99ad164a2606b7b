// Package model 定义了与数据库表对应的 Go 结构体。
package model

// User 对应于数据库中的 'users' 表。
// 用户记录在注册时创建，之后既不更新也不删除。
type User struct {
	// ID 是用户的唯一标识符，作为主键。
	ID uint `gorm:"primaryKey" json:"id"`
	// Username 全局唯一，重复注册依赖该唯一索引在插入时报错。
	Username string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	// Password 存储 bcrypt 哈希后的密码，绝不存储明文。
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}
