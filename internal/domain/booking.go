package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

// SessionType represents the kind of therapy session being booked
type SessionType string

const (
	SessionTypeFirst    SessionType = "first"
	SessionTypeFollowUp SessionType = "follow_up"
)

// Booking represents a session reservation in the system.
// A booking references exactly one slot; the slot_id unique constraint
// guarantees at most one booking row per slot at any time.
type Booking struct {
	ID          int64
	UserID      int64
	SlotID      int64
	SessionType SessionType
	Status      BookingStatus

	TherapyType *string
	Reason      *string
	MeetingLink *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusRejected
}

// IsPending returns true if the booking is awaiting an admin decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsConfirmed returns true if the booking has been confirmed by the admin
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsRejected returns true if the booking has been rejected by the admin
func (b *Booking) IsRejected() bool {
	return b.Status == StatusRejected
}

// CanTransition returns true if the admin may move the booking to the given status.
// Only pending bookings can be confirmed or rejected; both outcomes are terminal.
func (b *Booking) CanTransition(to BookingStatus) bool {
	return b.Status == StatusPending && (to == StatusConfirmed || to == StatusRejected)
}
