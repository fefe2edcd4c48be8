package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/discountrule"
	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

const maxLabelLength = 255

// Service сервис управления правилами скидок и настройками
type Service struct {
	ruleRepo     DiscountRuleRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса скидок
func NewService(ruleRepo DiscountRuleRepository, settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// CreateRule создает новое правило скидки.
// Пересечение диапазонов с существующими правилами допустимо:
// конфликт разрешается на этапе резолва по специфичности.
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: creating rule [%d, %d] -> %d%%", req.BookingsFrom, req.BookingsTo, req.Percent)

	if err := validateRule(req); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	rule := &domain.DiscountRule{
		BookingsFrom: req.BookingsFrom,
		BookingsTo:   req.BookingsTo,
		Percent:      req.Percent,
		Label:        req.Label,
		IsActive:     true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: failed to create rule: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: successfully created rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// ListRules возвращает все правила скидок, включая неактивные
func (s *Service) ListRules(ctx context.Context) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: fetching discount rules")

	list, err := s.ruleRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRules: successfully fetched %d rules", len(list))
	return models.FromDomainRuleList(list), nil
}

// DeleteRule удаляет правило скидки
func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	s.logger.Info("DeleteRule: deleting rule id=%d", id)

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: failed to delete rule id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: successfully deleted rule id=%d", id)
	return nil
}

// GetSettings возвращает текущие настройки сервиса
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings включает или выключает систему скидок целиком
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: setting discountsEnabled=%v", req.DiscountsEnabled)

	if err := s.settingsRepo.SetDiscountsEnabled(ctx, req.DiscountsEnabled); err != nil {
		s.logger.Error("UpdateSettings: failed to update settings: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	return s.GetSettings(ctx)
}

// validateRule проверяет корректность диапазона и процента правила
func validateRule(req *models.CreateRuleRequest) error {
	if req.BookingsFrom < 0 {
		return fmt.Errorf("%w: bookingsFrom must be non-negative", ErrInvalidInput)
	}
	if req.BookingsTo < req.BookingsFrom {
		return fmt.Errorf("%w: bookingsTo must be greater or equal to bookingsFrom", ErrInvalidInput)
	}
	if req.Percent <= 0 || req.Percent > 100 {
		return fmt.Errorf("%w: percent must be in range (0, 100]", ErrInvalidInput)
	}
	if req.Label != nil && len(*req.Label) > maxLabelLength {
		return fmt.Errorf("%w: label is too long", ErrInvalidInput)
	}

	return nil
}
