package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/user"
)

// Limits лимиты создания бронирований
type Limits struct {
	MaxActiveBookings int           // Максимум активных будущих бронирований на пользователя
	Cooldown          time.Duration // Минимальный интервал между созданием заявок
}

// DefaultLimits лимиты по умолчанию из domain-констант
func DefaultLimits() Limits {
	return Limits{
		MaxActiveBookings: domain.DefaultMaxActiveBookings,
		Cooldown:          domain.DefaultBookingCooldown,
	}
}

// UseCase use case создания бронирования.
//
// Логика разбита на две фазы:
//  1. Предварительные проверки вне транзакции (пользователь, лимиты,
//     cooldown, последовательность сессий) - их результат может устареть,
//     это допустимо.
//  2. Критическая секция в сериализуемой транзакции: перечитывание слота
//     с блокировкой, перепроверка занятости, вставка бронирования и
//     установка is_booked. Уникальное ограничение bookings.slot_id
//     закрывает оставшееся окно гонки.
type UseCase struct {
	userRepo     UserRepository
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	notifier     Notifier
	txManager    TransactionManager
	limits       Limits
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier Notifier,
	txManager TransactionManager,
	limits Limits,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		notifier:     notifier,
		txManager:    txManager,
		limits:       limits,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, type=%s", req.UserID, req.SlotID, req.SessionType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Пользователь существует и не заблокирован
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if user.IsBlocked {
		uc.logger.Warn("CreateBooking: user id=%d is blocked", req.UserID)
		return nil, ErrUserBlocked
	}

	// 3. Лимит активных будущих бронирований
	activeCount, err := uc.bookingRepo.CountActiveFutureByUser(ctx, req.UserID, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count active bookings for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}
	if activeCount >= uc.limits.MaxActiveBookings {
		uc.logger.Warn("CreateBooking: user id=%d has %d active bookings (limit %d)",
			req.UserID, activeCount, uc.limits.MaxActiveBookings)
		return nil, fmt.Errorf("%w: у вас уже %d активных бронирований", ErrTooManyActiveBookings, activeCount)
	}

	// 4. Cooldown: с момента предыдущей заявки должно пройти не меньше limits.Cooldown.
	// У самой первой заявки пользователя предыдущей строки нет - проверка проходит.
	if err := uc.checkCooldown(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	// 5. Последовательность сессий: без истории - только first, с историей - только follow_up
	priorCount, err := uc.bookingRepo.CountPriorByUser(ctx, req.UserID, req.TherapyType)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count prior bookings for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to count prior bookings: %v", ErrInternal, err)
	}
	if err := validateSessionType(req.SessionType, priorCount, req.TherapyType); err != nil {
		uc.logger.Warn("CreateBooking: session type validation failed for user id=%d: %v", req.UserID, err)
		return nil, err
	}

	// 6. Критическая секция: атомарный захват слота.
	// При конфликте (конкурентная вставка или сбой сериализации) повторяем
	// один раз на свежем чтении, после чего отдаём ErrSlotUnavailable.
	var (
		result     *domain.Booking
		resultSlot *domain.SessionSlot
	)

	const maxAttempts = 2
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, resultSlot, err = uc.reserveSlot(ctx, req)
		if err == nil {
			break
		}

		if isRetryableConflict(err) {
			uc.logger.Warn("CreateBooking: transaction conflict on slot id=%d (attempt %d/%d): %v",
				req.SlotID, attempt, maxAttempts, err)
			if attempt == maxAttempts {
				return nil, ErrSlotUnavailable
			}
			continue
		}

		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for user id=%d, slot id=%d",
		result.ID, req.UserID, req.SlotID)

	// 7. Уведомление администратора - best-effort, вне транзакции.
	// Ошибка доставки не отменяет созданное бронирование.
	uc.notifier.NotifyAdminNewBooking(user, result, resultSlot)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		SlotID:      result.SlotID,
		SessionType: result.SessionType,
		Status:      result.Status,
		TherapyType: result.TherapyType,
		Reason:      result.Reason,
		SlotDate:    resultSlot.Date,
		StartTime:   resultSlot.StartTime,
		EndTime:     resultSlot.EndTime,
		Mode:        resultSlot.Mode,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// checkCooldown проверяет минимальный интервал между заявками пользователя
func (uc *UseCase) checkCooldown(ctx context.Context, userID int64, now time.Time) error {
	latest, err := uc.bookingRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Первая заявка пользователя - cooldown не применяется
			return nil
		}
		uc.logger.Error("CreateBooking: failed to get latest booking for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to get latest booking: %v", ErrInternal, err)
	}

	elapsed := now.Sub(latest.CreatedAt)
	if elapsed < uc.limits.Cooldown {
		uc.logger.Warn("CreateBooking: cooldown active for user id=%d (%s elapsed of %s)",
			userID, elapsed.Round(time.Second), uc.limits.Cooldown)
		return fmt.Errorf("%w: следующую заявку можно создать через %d сек.",
			ErrBookingCooldown, int((uc.limits.Cooldown - elapsed).Seconds())+1)
	}

	return nil
}

// reserveSlot атомарно захватывает слот и создает бронирование.
// Выполняется в сериализуемой транзакции: слот перечитывается с блокировкой,
// занятость перепроверяется по строке бронирования.
func (uc *UseCase) reserveSlot(ctx context.Context, req *Request) (*domain.Booking, *domain.SessionSlot, error) {
	var (
		created *domain.Booking
		slot    *domain.SessionSlot
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем слот уже внутри транзакции (FOR UPDATE)
		var err error
		slot, err = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.IsBooked {
			return ErrSlotUnavailable
		}

		// Перепроверяем строку бронирования на этом слоте.
		// Отклонённая заявка освобождает слот для повторного использования -
		// удаляем её, чтобы уникальное ограничение пропустило новую вставку.
		existing, err := uc.bookingRepo.GetBySlotID(txCtx, req.SlotID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}
		if existing != nil {
			if !existing.IsRejected() {
				// Конкурентный запрос успел занять слот
				return ErrSlotUnavailable
			}
			if err := uc.bookingRepo.Delete(txCtx, existing.ID); err != nil {
				return fmt.Errorf("%w: failed to delete rejected booking: %v", ErrInternal, err)
			}
			uc.logger.Info("CreateBooking: reclaimed slot id=%d from rejected booking id=%d",
				req.SlotID, existing.ID)
		}

		booking := &domain.Booking{
			UserID:      req.UserID,
			SlotID:      req.SlotID,
			SessionType: req.SessionType,
			Status:      domain.StatusPending,
			TherapyType: req.TherapyType,
			Reason:      req.Reason,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		if err := uc.slotRepo.SetBooked(txCtx, req.SlotID, true); err != nil {
			return fmt.Errorf("%w: failed to mark slot as booked: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return created, slot, nil
}

// isRetryableConflict возвращает true для конфликтов, после которых имеет
// смысл один повтор на свежем чтении
func isRetryableConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrSlotTaken) ||
		bookingRepo.IsUniqueViolation(err) ||
		bookingRepo.IsSerializationFailure(err)
}
