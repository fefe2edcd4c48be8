package check_discount

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

type ResolveDiscountUseCase interface {
	Execute(ctx context.Context, userID int64) (*domain.Discount, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
