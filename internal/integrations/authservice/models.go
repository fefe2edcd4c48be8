package authservice

// Identity результат проверки токена во внешнем сервисе аутентификации
type Identity struct {
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Blocked  bool   `json:"blocked"`
}

// ErrorResponse модель ошибки от AuthService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
