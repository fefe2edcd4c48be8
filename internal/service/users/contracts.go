package users

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/internal/integrations/authservice"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	UpdateAdminNotes(ctx context.Context, id int64, notes *string) error
}

// IdentityClient интерфейс клиента внешнего сервиса аутентификации
type IdentityClient interface {
	VerifyIdentity(ctx context.Context, token string) (*authservice.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
