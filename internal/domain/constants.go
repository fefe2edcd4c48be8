package domain

import "time"

// Default booking limits
// Могут быть переопределены через секцию [booking] в config.toml
const (
	DefaultMaxActiveBookings = 3               // Максимум активных (не отклонённых) будущих бронирований на пользователя
	DefaultBookingCooldown   = 2 * time.Minute // Минимальный интервал между созданием бронирований
)

// Business validation constants
const (
	MinDiscountPercent = 1
	MaxDiscountPercent = 100
	MaxReasonLength    = 500
	MaxLabelLength     = 100
	MaxNotesLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование удерживает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
