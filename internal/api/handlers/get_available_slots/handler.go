package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/internal/service/slots"
	"github.com/m04kA/SMC-TherapyService/internal/service/slots/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Публичная выдача: только свободные слоты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListSlotsRequest{
		OnlyFree: true,
	}

	if mode := query.Get("mode"); mode != "" {
		req.Mode = &mode
	}
	if therapyType := query.Get("therapyType"); therapyType != "" {
		req.TherapyType = &therapyType
	}

	// Опциональные границы дат
	if dateFrom := query.Get("dateFrom"); dateFrom != "" {
		parsed, err := time.Parse(domain.DateFormat, dateFrom)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid dateFrom: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateFrom = &parsed
	}
	if dateTo := query.Get("dateTo"); dateTo != "" {
		parsed, err := time.Parse(domain.DateFormat, dateTo)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid dateTo: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateTo = &parsed
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /slots - Failed to list slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: count=%d", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
