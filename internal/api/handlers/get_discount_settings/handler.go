package get_discount_settings

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

// Handle GET /api/v1/admin/settings/discounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings/discounts - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/settings/discounts - Settings retrieved: discounts_enabled=%v",
		result.DiscountsEnabled)
	handlers.RespondJSON(w, http.StatusOK, result)
}
