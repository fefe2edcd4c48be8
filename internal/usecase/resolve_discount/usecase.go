package resolve_discount

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// UseCase use case резолва скидки лояльности для пользователя
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     DiscountRuleRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo DiscountRuleRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute возвращает скидку пользователя или nil, если скидка не положена.
//
// Порядок проверок:
//  1. Глобальный тумблер скидок выключен - сразу nil.
//  2. Некорректный userID - сразу nil, до любых запросов. Без этой
//     проверки отсутствующий фильтр по пользователю превратил бы запрос
//     в подсчёт бронирований по всей базе.
//  3. Считаем только подтверждённые бронирования пользователя.
//  4. Из активных правил, покрывающих это число, выбираем самое
//     специфичное (см. pickBestRule).
func (uc *UseCase) Execute(ctx context.Context, userID int64) (*domain.Discount, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("ResolveDiscount: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if !settings.DiscountsEnabled {
		return nil, nil
	}

	// Защита от неотфильтрованного подсчёта
	if userID <= 0 {
		uc.logger.Warn("ResolveDiscount: called without a valid user id (%d)", userID)
		return nil, nil
	}

	confirmedCount, err := uc.bookingRepo.CountConfirmedByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("ResolveDiscount: failed to count confirmed bookings for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to count confirmed bookings: %v", ErrInternal, err)
	}

	rules, err := uc.ruleRepo.List(ctx, true)
	if err != nil {
		uc.logger.Error("ResolveDiscount: failed to list discount rules: %v", err)
		return nil, fmt.Errorf("%w: failed to list discount rules: %v", ErrInternal, err)
	}

	best := pickBestRule(rules, confirmedCount)
	if best == nil {
		uc.logger.Info("ResolveDiscount: no rule matches user id=%d (confirmed=%d)", userID, confirmedCount)
		return nil, nil
	}

	uc.logger.Info("ResolveDiscount: user id=%d (confirmed=%d) resolved to rule id=%d (%d%%)",
		userID, confirmedCount, best.ID, best.Percent)

	return &domain.Discount{
		Percent: best.Percent,
		Label:   best.Label,
	}, nil
}
