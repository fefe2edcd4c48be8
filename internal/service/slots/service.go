package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TherapyService/internal/service/slots/models"
)

// Service сервис управления слотами расписания
type Service struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новый слот расписания
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot date=%s %s-%s", req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	mode, err := s.validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	slot := &domain.SessionSlot{
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Mode:        mode,
		TherapyType: req.TherapyType,
		IsBooked:    false,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: failed to create slot: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// List возвращает слоты по фильтру. Публичная выдача использует
// OnlyFree=true, админская - без ограничений.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots, onlyFree=%v", req.OnlyFree)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots", len(list))
	return models.FromDomainSlotList(list), nil
}

// AdminDelete удаляет слот расписания.
//
// Слот с активным (pending или confirmed) бронированием удалить нельзя:
// сначала администратор разбирается с бронированием. Отклонённое
// бронирование слот не защищает - оно удаляется вместе со слотом
// одной транзакцией.
func (s *Service) AdminDelete(ctx context.Context, slotID int64) error {
	s.logger.Info("AdminDelete: deleting slot id=%d", slotID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, slotID); err != nil {
			return err
		}

		booking, err := s.bookingRepo.GetBySlotID(txCtx, slotID)
		switch {
		case err == nil:
			if booking.IsActive() {
				return ErrSlotHasActiveBooking
			}
			if err := s.bookingRepo.Delete(txCtx, booking.ID); err != nil {
				return err
			}
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			// Свободный слот, удаляем без дополнительных действий
		default:
			return err
		}

		return s.slotRepo.Delete(txCtx, slotID)
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("AdminDelete: slot id=%d not found", slotID)
			return ErrSlotNotFound
		case errors.Is(err, ErrSlotHasActiveBooking):
			s.logger.Warn("AdminDelete: slot id=%d has an active booking", slotID)
			return ErrSlotHasActiveBooking
		default:
			s.logger.Error("AdminDelete: failed to delete slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: AdminDelete - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("AdminDelete: successfully deleted slot id=%d", slotID)
	return nil
}

// validateCreateRequest проверяет корректность данных нового слота
func (s *Service) validateCreateRequest(req *models.CreateSlotRequest) (domain.SlotMode, error) {
	if err := req.StartTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return "", fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.Date.Before(today) {
		return "", fmt.Errorf("%w: slot date is in the past", ErrInvalidInput)
	}

	mode, err := models.ToDomainSlotMode(req.Mode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return mode, nil
}
