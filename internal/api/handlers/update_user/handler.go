package update_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/service/users"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsBlocked != nil {
		if err := h.service.SetBlocked(r.Context(), userID, *req.IsBlocked); err != nil {
			h.respondServiceError(w, userID, err)
			return
		}
	}

	if req.AdminNotes != nil {
		if err := h.service.UpdateAdminNotes(r.Context(), userID, req.AdminNotes); err != nil {
			h.respondServiceError(w, userID, err)
			return
		}
	}

	result, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, userID, err)
		return
	}

	h.logger.Info("PATCH /admin/users/{id} - User updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		h.logger.Warn("PATCH /admin/users/{id} - User not found: user_id=%d", userID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("PATCH /admin/users/{id} - Failed to update user: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}
