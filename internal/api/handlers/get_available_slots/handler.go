package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/autoshop/garage-booking/internal/api/handlers"
	getAvailableSlots "github.com/autoshop/garage-booking/internal/usecase/get_available_slots"
)

const (
	msgMissingService       = "service is required"
	msgMissingDate          = "date is required"
	msgInvalidDate          = "invalid date format, expected YYYY-MM-DD"
	msgServiceNotFound      = "unknown service"
	msgInvalidBusinessHours = "business hours for this date are misconfigured"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), service (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	service := query.Get("service")
	if service == "" {
		h.logger.Warn("GET /availability - Missing service")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(dateStr, service)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service=%s", service)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidBusinessHours):
			h.logger.Warn("GET /availability - Invalid business hours: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessHours)

		default:
			h.logger.Error("GET /availability - Failed to get slots: date=%s, service=%s, error=%v",
				dateStr, service, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: date=%s, service=%s, slots_count=%d",
		dateStr, service, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
