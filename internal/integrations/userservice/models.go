package userservice

import "github.com/m04kA/SMC-QueueService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	Archived bool   `json:"archived"`
}

// ToWorker переводит пользователя в доменную модель мастера
func (u *User) ToWorker() *domain.Worker {
	return &domain.Worker{
		ID:       u.ID,
		Role:     domain.Role(u.Role),
		Archived: u.Archived,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
