package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/pkg/types"
)

var (
	// ErrInvalidMode возвращается при некорректном формате сессии
	ErrInvalidMode = errors.New("invalid slot mode")
)

// Request модели

// CreateSlotRequest запрос администратора на создание слота
type CreateSlotRequest struct {
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Mode        string
	TherapyType *string
}

// ListSlotsRequest запрос на получение слотов
type ListSlotsRequest struct {
	OnlyFree    bool
	Mode        *string
	TherapyType *string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		OnlyFree:    r.OnlyFree,
		TherapyType: r.TherapyType,
		DateFrom:    r.DateFrom,
		DateTo:      r.DateTo,
	}

	if r.Mode != nil {
		mode, err := ToDomainSlotMode(*r.Mode)
		if err != nil {
			return filter, err
		}
		filter.Mode = &mode
	}

	return filter, nil
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`      // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "11:00"
	Mode        string  `json:"mode"`
	TherapyType *string `json:"therapyType,omitempty"`
	IsBooked    bool    `json:"isBooked"`

	CreatedAt time.Time `json:"createdAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.SessionSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Mode:        string(s.Mode),
		TherapyType: s.TherapyType,
		IsBooked:    s.IsBooked,
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.SessionSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainSlotMode конвертирует строку в domain.SlotMode с валидацией
func ToDomainSlotMode(mode string) (domain.SlotMode, error) {
	m := domain.SlotMode(mode)

	if m == domain.ModeOnline || m == domain.ModeOffline {
		return m, nil
	}

	return "", ErrInvalidMode
}
