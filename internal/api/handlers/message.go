package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_web/internal/repository"
)

// MessageHandler 處理消息歷史的 REST 查詢
type MessageHandler struct {
	messageRepo repository.MessageRepository
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messageRepo repository.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

// ListMessages 按時間降序返回全部消息
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageRepo.FindAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "獲取消息失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
