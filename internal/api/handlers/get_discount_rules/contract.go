package get_discount_rules

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

type DiscountService interface {
	ListRules(ctx context.Context) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
