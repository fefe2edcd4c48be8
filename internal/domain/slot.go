package domain

import (
	"time"

	"github.com/m04kA/SMC-TherapyService/pkg/types"
)

// SlotMode represents how the session is held
type SlotMode string

const (
	ModeOnline  SlotMode = "online"
	ModeOffline SlotMode = "offline"
)

// SessionSlot represents a bookable time window created by the admin.
// Invariant: IsBooked = true iff exactly one non-rejected booking references the slot.
type SessionSlot struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Mode        SlotMode
	TherapyType *string
	IsBooked    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree returns true if the slot can still be reserved
func (s *SessionSlot) IsFree() bool {
	return !s.IsBooked
}

// IsPast returns true if the slot date is before today
func (s *SessionSlot) IsPast(now time.Time) bool {
	slotDay := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return slotDay.Before(nowDay)
}

// SlotFilter фильтр для получения слотов
type SlotFilter struct {
	OnlyFree    bool       // Только свободные слоты (is_booked = false)
	Mode        *SlotMode  // Фильтр по формату (опционально)
	TherapyType *string    // Фильтр по типу терапии (опционально)
	DateFrom    *time.Time // Начало периода (опционально)
	DateTo      *time.Time // Конец периода (опционально)
}
