package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований.
//
// Каждый переход, который меняет и бронирование, и слот, выполняется
// одной транзакцией: частично применённая пара (занятый слот без
// бронирования или наоборот) - это именно тот дефект, который исключает
// транзакционная граница.
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	userRepo    UserRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только своё бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: user=%d is not the owner of booking id=%d", userID, id)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, userID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", userID, status)

	var domainStatus *domain.BookingStatus
	if status != nil {
		converted, err := toAnyBookingStatus(*status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *status, userID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	list, err := s.bookingRepo.GetByUserID(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(list), userID)
	return models.FromDomainBookingList(list), nil
}

// UpdateStatus выполняет админский переход статуса: confirmed или rejected.
// Переход допустим только из статуса pending.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if !booking.CanTransition(newStatus) {
		s.logger.Warn("UpdateStatus: booking id=%d cannot go %s -> %s", bookingID, booking.Status, newStatus)
		return nil, ErrInvalidTransition
	}

	switch newStatus {
	case domain.StatusConfirmed:
		err = s.confirm(ctx, booking, req.MeetingLink)
	case domain.StatusRejected:
		err = s.reject(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	// Перечитываем строку: updated_at проставляет репозиторий
	updated, err := s.getBooking(ctx, bookingID, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// confirm подтверждает бронирование. Слот остаётся занятым,
// пользователю уходит письмо с датой, форматом и ссылкой на встречу.
func (s *Service) confirm(ctx context.Context, booking *domain.Booking, meetingLink *string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed, meetingLink); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed to confirm booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: confirm - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed
	if meetingLink != nil {
		booking.MeetingLink = meetingLink
	}

	s.notifyUser(ctx, booking, func(user *domain.User, slot *domain.SessionSlot) {
		s.notifier.NotifyUserConfirmed(user, booking, slot)
	})

	return nil
}

// reject отклоняет бронирование и в той же транзакции освобождает слот -
// он сразу становится доступным для новых заявок
func (s *Service) reject(ctx context.Context, booking *domain.Booking) error {
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusRejected, nil); err != nil {
			return err
		}
		return s.slotRepo.SetBooked(txCtx, booking.SlotID, false)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed to reject booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: reject - transaction error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusRejected

	s.notifyUser(ctx, booking, func(user *domain.User, slot *domain.SessionSlot) {
		s.notifier.NotifyUserRejected(user, slot)
	})

	return nil
}

// Cancel отменяет бронирование по инициативе пользователя.
// Доступно владельцу в любом статусе: слот освобождается и строка
// бронирования удаляется одной транзакцией. Если отменена подтверждённая
// сессия, администратору уходит алерт о возврате средств.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	// Чужое бронирование неотличимо от несуществующего
	if booking.UserID != userID {
		s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", userID, bookingID)
		return ErrBookingNotFound
	}

	wasConfirmed := booking.IsConfirmed()

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.slotRepo.SetBooked(txCtx, booking.SlotID, false); err != nil {
			return err
		}
		return s.bookingRepo.Delete(txCtx, booking.ID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, slot id=%d freed", bookingID, booking.SlotID)

	if wasConfirmed {
		s.notifyUser(ctx, booking, func(user *domain.User, slot *domain.SessionSlot) {
			s.notifier.NotifyAdminRefundRequired(user, booking, slot)
		})
	}

	return nil
}

// AdminDelete удаляет бронирование по решению администратора.
// У отклонённого бронирования слот уже свободен; в остальных статусах
// слот освобождается в той же транзакции, что и удаление.
func (s *Service) AdminDelete(ctx context.Context, bookingID int64) error {
	s.logger.Info("AdminDelete: deleting booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID, "AdminDelete")
	if err != nil {
		return err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !booking.IsRejected() {
			if err := s.slotRepo.SetBooked(txCtx, booking.SlotID, false); err != nil {
				return err
			}
		}
		return s.bookingRepo.Delete(txCtx, booking.ID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("AdminDelete: failed to delete booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AdminDelete - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("AdminDelete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// notifyUser загружает пользователя и слот и запускает уведомление.
// Ошибки загрузки только логируются: уведомление - побочный эффект,
// который не должен ломать уже применённый переход.
func (s *Service) notifyUser(ctx context.Context, booking *domain.Booking, notify func(*domain.User, *domain.SessionSlot)) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Error("notifyUser: failed to get user id=%d for booking id=%d: %v", booking.UserID, booking.ID, err)
		return
	}

	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		s.logger.Error("notifyUser: failed to get slot id=%d for booking id=%d: %v", booking.SlotID, booking.ID, err)
		return
	}

	notify(user, slot)
}

// toAnyBookingStatus валидирует статус для фильтрации списков
// (в отличие от models.ToDomainBookingStatus допускает pending)
func toAnyBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected:
		return s, nil
	}

	return "", models.ErrInvalidStatus
}
