package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_web/internal/api/handlers"
	"chat_web/internal/middleware"
	"chat_web/internal/repository"
	"chat_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, repos *repository.Repositories) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	messageHandler := handlers.NewMessageHandler(repos.Message)
	wsHandler := handlers.NewWebSocketHandler(services.Chat)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// WebSocket 連接點，身份由 join 事件攜帶而非 HTTP 請求
		api.GET("/ws", wsHandler.HandleWebSocket)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 消息歷史查詢
		authorized.GET("/messages", messageHandler.ListMessages)
	}
}
