package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64              // ID пользователя
	SlotID      int64              // ID слота
	SessionType domain.SessionType // Тип сессии: first или follow_up
	TherapyType *string            // Тип терапии (опционально)
	Reason      *string            // Комментарий пользователя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	UserID      int64
	SlotID      int64
	SessionType domain.SessionType
	Status      domain.BookingStatus
	TherapyType *string
	Reason      *string

	// Данные слота
	SlotDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Mode      domain.SlotMode

	CreatedAt time.Time
	UpdatedAt time.Time
}
