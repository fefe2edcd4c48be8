package resolve_discount

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedByUser(ctx context.Context, userID int64) (int, error)
}

// DiscountRuleRepository интерфейс репозитория правил скидок
type DiscountRuleRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.DiscountRule, error)
}

// SettingsRepository интерфейс репозитория настроек сервиса
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ServiceSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
