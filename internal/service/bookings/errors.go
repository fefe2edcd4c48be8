package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено.
	// Также возвращается при попытке отменить чужое бронирование, чтобы
	// не раскрывать факт его существования.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (подтвердить или отклонить можно только ожидающее бронирование)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
