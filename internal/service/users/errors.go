package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTokenInvalid возвращается при невалидном токене идентичности
	ErrTokenInvalid = errors.New("identity token is invalid")

	// ErrIdentityNotVerified возвращается, когда email идентичности не подтверждён
	ErrIdentityNotVerified = errors.New("identity email is not verified")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
