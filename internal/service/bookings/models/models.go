package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос администратора на смену статуса бронирования
type UpdateStatusRequest struct {
	Status      string  `json:"status"`
	MeetingLink *string `json:"meetingLink,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	SlotID      int64   `json:"slotId"`
	SessionType string  `json:"sessionType"`
	Status      string  `json:"status"`
	TherapyType *string `json:"therapyType,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	MeetingLink *string `json:"meetingLink,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		SlotID:      b.SlotID,
		SessionType: string(b.SessionType),
		Status:      string(b.Status),
		TherapyType: b.TherapyType,
		Reason:      b.Reason,
		MeetingLink: b.MeetingLink,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в статус админского перехода.
// Администратор может выставить только confirmed или rejected.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	if s == domain.StatusConfirmed || s == domain.StatusRejected {
		return s, nil
	}

	return "", ErrInvalidStatus
}
