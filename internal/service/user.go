package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chat_web/internal/models"
	"chat_web/internal/repository"
)

// 認證服務的錯誤類型，由 handler 映射為對應的 HTTP 狀態碼
var (
	ErrMissingFields      = errors.New("缺少必填字段")
	ErrInvalidAuthCode    = errors.New("授權碼錯誤")
	ErrUsernameTaken      = errors.New("用戶名已被使用")
	ErrEmailTaken         = errors.New("郵箱已被使用")
	ErrInvalidCredentials = errors.New("用戶名或密碼錯誤")
)

// UserService 處理註冊與登入，聊天核心不創建或銷毀用戶身份，只引用它
type UserService struct {
	userRepo         repository.UserRepository
	registrationCode string
}

func NewUserService(userRepo repository.UserRepository, registrationCode string) *UserService {
	return &UserService{
		userRepo:         userRepo,
		registrationCode: registrationCode,
	}
}

// Register 創建新用戶，授權碼不匹配時拒絕註冊
func (s *UserService) Register(username, email, password, authCode string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if authCode != s.registrationCode {
		return nil, ErrInvalidAuthCode
	}

	// 檢查用戶名和郵箱是否已被占用
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 對密碼進行加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login 驗證用戶名和密碼
func (s *UserService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 驗證密碼
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
