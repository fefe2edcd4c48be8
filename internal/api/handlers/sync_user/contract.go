package sync_user

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/users/models"
)

type UserService interface {
	Sync(ctx context.Context, token string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
