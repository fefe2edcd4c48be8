package create_discount_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/service/discounts"
	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректные параметры правила скидки"
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

// Handle POST /api/v1/admin/discount-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/discount-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrInvalidInput):
			h.logger.Warn("POST /admin/discount-rules - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /admin/discount-rules - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/discount-rules - Rule created successfully: rule_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
