package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error)
	GetLatestByUser(ctx context.Context, userID int64) (*domain.Booking, error)
	CountActiveFutureByUser(ctx context.Context, userID int64, now time.Time) (int, error)
	CountPriorByUser(ctx context.Context, userID int64, therapyType *string) (int, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionSlot, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// Notifier интерфейс сервиса уведомлений.
// Вызовы не блокируют и не возвращают ошибок - доставка best-effort.
type Notifier interface {
	NotifyAdminNewBooking(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
