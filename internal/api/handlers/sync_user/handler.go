package sync_user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/service/users"
)

const (
	msgMissingToken = "требуется токен в заголовке Authorization"
	msgTokenInvalid = "токен недействителен"
	msgNotVerified  = "email не подтвержден"
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

// Handle POST /api/v1/users/sync
// Токен идентичности передается в заголовке Authorization: Bearer <token>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		h.logger.Warn("POST /users/sync - Missing bearer token")
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	result, err := h.service.Sync(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrTokenInvalid):
			h.logger.Warn("POST /users/sync - Token rejected")
			handlers.RespondUnauthorized(w, msgTokenInvalid)

		case errors.Is(err, users.ErrIdentityNotVerified):
			h.logger.Warn("POST /users/sync - Identity not verified")
			handlers.RespondForbidden(w, msgNotVerified)

		default:
			h.logger.Error("POST /users/sync - Failed to sync user: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/sync - User synced successfully: user_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
