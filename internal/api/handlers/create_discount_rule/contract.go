package create_discount_rule

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

type DiscountService interface {
	CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
