package models

import (
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// Request модели

// SyncRequest запрос на синхронизацию идентичности
type SyncRequest struct {
	Token string `json:"token"`
}

// UpdateNotesRequest запрос администратора на обновление заметок
type UpdateNotesRequest struct {
	AdminNotes *string `json:"adminNotes"`
}

// SetBlockedRequest запрос администратора на блокировку пользователя
type SetBlockedRequest struct {
	IsBlocked bool `json:"isBlocked"`
}

// Response модели

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID          int64   `json:"id"`
	Subject     string  `json:"subject"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName,omitempty"`
	IsBlocked   bool    `json:"isBlocked"`
	AdminNotes  *string `json:"adminNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:          u.ID,
		Subject:     u.Subject,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsBlocked:   u.IsBlocked,
		AdminNotes:  u.AdminNotes,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
