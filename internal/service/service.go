package service

import (
	"chat_web/internal/repository"
)

type Services struct {
	User *UserService
	Chat *ChatService
}

func NewServices(repos *repository.Repositories, registrationCode string) *Services {
	return &Services{
		User: NewUserService(repos.User, registrationCode),
		Chat: NewChatService(repos.Message),
	}
}
