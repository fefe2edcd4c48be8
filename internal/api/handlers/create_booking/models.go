package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	createBooking "github.com/m04kA/SMC-TherapyService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID      int64   `json:"slotId"`
	SessionType string  `json:"sessionType"` // "first" или "follow_up"
	TherapyType *string `json:"therapyType,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	SlotID      int64   `json:"slotId"`
	SessionType string  `json:"sessionType"`
	Status      string  `json:"status"`
	TherapyType *string `json:"therapyType,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	SlotDate    string  `json:"slotDate"`  // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "11:00"
	Mode        string  `json:"mode"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:      userID,
		SlotID:      r.SlotID,
		SessionType: domain.SessionType(r.SessionType),
		TherapyType: r.TherapyType,
		Reason:      r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		SlotID:      resp.SlotID,
		SessionType: string(resp.SessionType),
		Status:      string(resp.Status),
		TherapyType: resp.TherapyType,
		Reason:      resp.Reason,
		SlotDate:    resp.SlotDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Mode:        string(resp.Mode),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
