package models

import (
	"strconv"

	"gorm.io/gorm"
)

// User 表示系統中的用戶
type User struct {
	gorm.Model        // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Username   string `gorm:"uniqueIndex;not null" json:"username"` // 用戶名，必須唯一
	Email      string `gorm:"uniqueIndex;not null" json:"email"`    // 電子郵箱，必須唯一
	Password   string `gorm:"not null" json:"-"`                    // 密碼哈希，json 序列化時會被忽略
}

// UserID 返回聊天核心使用的字符串形式用戶標識
func (u *User) UserID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
