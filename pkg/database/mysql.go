// Package database 负责初始化底层存储（MySQL 与 Redis）的客户端。
package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"yojna-mitra-go/pkg/log"
)

var DB *gorm.DB

// InitMySQL 初始化 MySQL 数据库连接。
// TranslateError 开启后，唯一索引冲突会被翻译为 gorm.ErrDuplicatedKey，
// 注册流程依赖该错误来识别用户名重复。
func InitMySQL(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	// 配置连接池。请求代码不持有长连接，单次操作从池中取用并归还。
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("MySQL database connected successfully")
}
