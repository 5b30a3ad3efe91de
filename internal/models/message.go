package models

import (
	"time"

	"github.com/google/uuid"
)

// Message 代表一條聊天消息，同時滿足 WebSocket 傳輸和數據庫存儲需求
// 消息一旦創建即不可變，不支持編輯或刪除
type Message struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string `json:"userId" gorm:"index;not null"`
	Username  string `json:"username" gorm:"not null"` // 發送時快照的用戶名
	Text      string `json:"text" gorm:"type:text;not null"`
	Timestamp int64  `json:"timestamp" gorm:"index;not null"` // 毫秒時間戳，持久化時由服務端設置
}

// NewMessage 創建一條新的聊天消息，生成唯一 ID 並記錄當前服務端時間
func NewMessage(userID, username, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}
