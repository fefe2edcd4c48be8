package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserBlocked возвращается, когда пользователь заблокирован администратором
	ErrUserBlocked = errors.New("create_booking: user is blocked")

	// ErrTooManyActiveBookings возвращается при превышении лимита активных бронирований
	ErrTooManyActiveBookings = errors.New("create_booking: active bookings limit exceeded")

	// ErrBookingCooldown возвращается, когда с момента предыдущей заявки прошло
	// меньше минимального интервала
	ErrBookingCooldown = errors.New("create_booking: booking cooldown is active")

	// ErrInvalidSessionType возвращается при нарушении последовательности
	// первая сессия -> повторная сессия
	ErrInvalidSessionType = errors.New("create_booking: invalid session type")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот уже занят
	// (в том числе когда конкурентный запрос выиграл гонку)
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
