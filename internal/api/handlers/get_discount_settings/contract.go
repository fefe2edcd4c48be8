package get_discount_settings

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

type DiscountService interface {
	GetSettings(ctx context.Context) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
