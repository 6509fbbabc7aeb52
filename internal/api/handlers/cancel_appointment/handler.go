package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/autoshop/garage-booking/internal/api/handlers"
	"github.com/autoshop/garage-booking/internal/service/appointments"
	"github.com/autoshop/garage-booking/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgInvalidRequestBody   = "invalid request body"
	msgNotFound             = "appointment not found"
	msgCannotCancel         = "appointment cannot be cancelled"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	req, ok := h.decode(w, r, "PATCH /appointments/{reference}/cancel")
	if !ok {
		return
	}

	result, err := h.service.CancelByReference(r.Context(), reference, req)
	if err != nil {
		h.respondError(w, "PATCH /appointments/{reference}/cancel", err)
		return
	}

	h.logger.Info("PATCH /appointments/{reference}/cancel - Appointment cancelled successfully: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID PATCH /api/v1/admin/appointments/{id}/cancel
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	req, ok := h.decode(w, r, "PATCH /admin/appointments/{id}/cancel")
	if !ok {
		return
	}

	result, err := h.service.CancelByID(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "PATCH /admin/appointments/{id}/cancel", err)
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/cancel - Appointment cancelled successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// decode тело необязательно: отмена без причины допустима
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*models.CancelRequest, bool) {
	var req CancelAppointmentRequest
	if r.ContentLength == 0 {
		return req.ToServiceRequest(), true
	}

	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	return req.ToServiceRequest(), true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, appointments.ErrCannotCancel):
		h.logger.Warn("%s - Cannot cancel", route)
		handlers.RespondBadRequest(w, msgCannotCancel)

	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed to cancel appointment: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
