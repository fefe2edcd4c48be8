package get_discount_rules

import (
	"net/http"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
)

type Handler struct {
	service DiscountService
	logger  Logger
}

func NewHandler(service DiscountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/discount-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRules(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/discount-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/discount-rules - Rules retrieved successfully: count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
