package export_appointments

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/autoshop/garage-booking/internal/api/handlers"
	"github.com/autoshop/garage-booking/internal/service/appointments"
	"github.com/autoshop/garage-booking/internal/service/appointments/models"
)

const (
	msgInvalidParams = "invalid query parameters"
	msgMissingPeriod = "from and to are required"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
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

// Handle GET /api/v1/admin/appointments/export
// Query params: from, to (обязательны), status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /admin/appointments/export - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	serviceReq, err := toServiceRequest(query)
	if err != nil {
		h.logger.Warn("GET /admin/appointments/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Собираем книгу в память: при ошибке клиент получит JSON, а не обрезанный файл
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), serviceReq, &buf); err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput), errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /admin/appointments/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /admin/appointments/export - Failed to export: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("schedule_%s_%s.xlsx", sanitize(from), sanitize(to))
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	size := buf.Len()
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/appointments/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /admin/appointments/export - Schedule exported: from=%s, to=%s, bytes=%d", from, to, size)
}

func toServiceRequest(query url.Values) (*models.ListRequest, error) {
	from, to := query.Get("from"), query.Get("to")
	req := &models.ListRequest{From: &from, To: &to}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("includeCancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}
	return req, nil
}

// sanitize оставляет в имени файла только цифры и дефисы
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}
