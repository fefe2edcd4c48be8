package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.SessionType != domain.SessionTypeFirst && req.SessionType != domain.SessionTypeFollowUp {
		return fmt.Errorf("%w: sessionType must be first or follow_up", ErrInvalidInput)
	}

	if req.TherapyType != nil && *req.TherapyType == "" {
		return fmt.Errorf("%w: therapyType must not be empty", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateSessionType проверяет последовательность сессий.
// priorCount - количество не отклонённых бронирований пользователя
// (с учётом фильтра по типу терапии, если он задан).
// Без истории допустима только первая сессия, с историей - только повторная.
func validateSessionType(requested domain.SessionType, priorCount int, therapyType *string) error {
	expected := domain.SessionTypeFirst
	if priorCount > 0 {
		expected = domain.SessionTypeFollowUp
	}

	if requested == expected {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidSessionType, sessionTypeMessage(expected, therapyType))
}

// sessionTypeMessage строит подсказку для пользователя: какой тип сессии
// ожидается и для какого типа терапии
func sessionTypeMessage(expected domain.SessionType, therapyType *string) string {
	var msg string
	if expected == domain.SessionTypeFirst {
		msg = "сначала нужно записаться на первую сессию"
	} else {
		msg = "у вас уже есть сессии, выберите повторную сессию"
	}

	if therapyType != nil {
		msg += fmt.Sprintf(" (тип терапии: %s)", *therapyType)
	}

	return msg
}
