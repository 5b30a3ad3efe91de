package repository

import (
	"chat_web/internal/models"
	"chat_web/internal/storage"
)

// MessageRepository 是消息的持久化接口
// 核心將其視為可靠的同步存儲：單次寫入失敗只影響該條消息，不影響服務進程
type MessageRepository interface {
	Create(message *models.Message) error
	// FindAll 按時間戳降序返回全部消息
	FindAll() ([]models.Message, error)
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindAll() ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Order("timestamp desc").Find(&messages).Error
	return messages, err
}
