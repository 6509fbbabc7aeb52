package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/autoshop/garage-booking/internal/api/handlers"
	"github.com/autoshop/garage-booking/internal/service/hours"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "no business hours override for this date"
)

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

// Handle PUT /api/v1/admin/business-hours/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), date, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput),
			errors.Is(err, hours.ErrInvalidTimeRange),
			errors.Is(err, hours.ErrInvalidCapacity):
			h.logger.Warn("PUT /admin/business-hours/{date} - Validation failed: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/business-hours/{date} - Failed to save override: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours/{date} - Override saved successfully: date=%s", date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/business-hours/{date}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.service.Delete(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/business-hours/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, hours.ErrOverrideNotFound):
			h.logger.Warn("DELETE /admin/business-hours/{date} - Override not found: date=%s", date)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/business-hours/{date} - Failed to delete override: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/business-hours/{date} - Override deleted successfully: date=%s", date)
	w.WriteHeader(http.StatusNoContent)
}
