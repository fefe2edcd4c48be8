package update_user

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/users/models"
)

type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.UserResponse, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	UpdateAdminNotes(ctx context.Context, id int64, notes *string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
