package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TherapyService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "создание записей недоступно, обратитесь к администратору"
	msgTooManyBookings    = "превышен лимит активных бронирований"
	msgCooldownActive     = "слишком частые заявки, попробуйте немного позже"
	msgInvalidSessionType = "некорректный тип сессии для вашей истории записей"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User blocked: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrTooManyActiveBookings):
			h.logger.Warn("POST /bookings - Too many active bookings: user_id=%d", userID)
			handlers.RespondErrorWithKind(w, http.StatusTooManyRequests, handlers.KindLimitExceeded,
				handlers.ErrorDetail(err, createBooking.ErrTooManyActiveBookings, msgTooManyBookings))

		case errors.Is(err, createBooking.ErrBookingCooldown):
			h.logger.Warn("POST /bookings - Cooldown active: user_id=%d", userID)
			handlers.RespondErrorWithKind(w, http.StatusTooManyRequests, handlers.KindRateLimited,
				handlers.ErrorDetail(err, createBooking.ErrBookingCooldown, msgCooldownActive))

		case errors.Is(err, createBooking.ErrInvalidSessionType):
			h.logger.Warn("POST /bookings - Invalid session type: user_id=%d, error=%v", userID, err)
			handlers.RespondErrorWithKind(w, http.StatusUnprocessableEntity, handlers.KindInvalidSessionType,
				handlers.ErrorDetail(err, createBooking.ErrInvalidSessionType, msgInvalidSessionType))

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondErrorWithKind(w, http.StatusConflict, handlers.KindSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, slot_id=%d",
		result.ID, userID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
