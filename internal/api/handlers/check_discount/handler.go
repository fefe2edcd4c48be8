package check_discount

import (
	"net/http"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/api/middleware"
)

const (
	msgUnauthorized = "требуется аутентификация"
)

type Handler struct {
	useCase ResolveDiscountUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDiscountUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/discount
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	discount, err := h.useCase.Execute(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/discount - Failed to resolve discount: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/discount - Discount resolved: user_id=%d, has_discount=%v",
		userID, discount != nil)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDiscount(discount))
}
