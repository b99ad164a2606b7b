// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yojna-mitra-go/internal/config"
	"yojna-mitra-go/internal/handler"
	"yojna-mitra-go/internal/middleware"
	"yojna-mitra-go/internal/model"
	"yojna-mitra-go/internal/repository"
	"yojna-mitra-go/internal/service"
	"yojna-mitra-go/pkg/database"
	"yojna-mitra-go/pkg/llm"
	"yojna-mitra-go/pkg/log"
	"yojna-mitra-go/pkg/session"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	if cfg.LLM.APIKey == "" {
		// 缺少密钥不阻止启动，首次 AI 调用会以占位消息的形式失败
		log.Warnf("GROQ_API_KEY 未设置，AI 调用将会失败")
	}

	// 3. 初始化数据库和 Redis
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	// 建表：users 与 chat_history
	if err := database.DB.AutoMigrate(&model.User{}, &model.ChatMessage{}); err != nil {
		log.Fatal("数据库迁移失败", err)
	}

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	sessions := session.NewManager(
		session.NewRedisStore(database.RDB),
		cfg.Session.Secret,
		cfg.Session.CookieName,
		cfg.Session.ExpireHours,
	)
	llmClient := llm.NewClient(cfg.LLM)
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(llmClient, chatRepo)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.LoadHTMLGlob("web/templates/*.html")

	// 7. 注册路由
	authHandler := handler.NewAuthHandler(userService, sessions)
	chatHandler := handler.NewChatHandler(chatService, sessions)

	r.GET("/", authHandler.Home)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/set_language", chatHandler.SetLanguage)

	// 需要会话的路由 (仅限登录用户访问)
	authed := r.Group("/")
	authed.Use(middleware.SessionAuth(sessions))
	{
		authed.GET("/chat", chatHandler.Chat)
		authed.POST("/chat", chatHandler.PostMessage)
		authed.GET("/new_chat", chatHandler.NewChat)
	}

	// 8. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
