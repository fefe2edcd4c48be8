package update_discount_settings

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

type DiscountService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
