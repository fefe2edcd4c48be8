package bookings

import (
	"context"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, meetingLink *string) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionSlot, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier интерфейс сервиса уведомлений.
// Вызовы не блокируют и не возвращают ошибок - доставка best-effort.
type Notifier interface {
	NotifyUserConfirmed(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot)
	NotifyUserRejected(user *domain.User, slot *domain.SessionSlot)
	NotifyAdminRefundRequired(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
