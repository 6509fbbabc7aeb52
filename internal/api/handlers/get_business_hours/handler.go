package get_business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/autoshop/garage-booking/internal/api/handlers"
	"github.com/autoshop/garage-booking/internal/service/hours"
)

const msgMissingPeriod = "from and to are required"

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business-hours/{date}
// Возвращает переопределение или расписание по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("GET /business-hours/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /business-hours/{date} - Failed to get business hours: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/admin/business-hours?from=&to=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /admin/business-hours - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("GET /admin/business-hours - Invalid period: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /admin/business-hours - Failed to list overrides: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/business-hours - Overrides retrieved successfully: from=%s, to=%s, count=%d",
		from, to, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
