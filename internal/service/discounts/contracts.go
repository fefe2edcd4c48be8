package discounts

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// DiscountRuleRepository интерфейс репозитория правил скидок
type DiscountRuleRepository interface {
	Create(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.DiscountRule, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsRepository интерфейс репозитория настроек сервиса
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ServiceSettings, error)
	SetDiscountsEnabled(ctx context.Context, enabled bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
