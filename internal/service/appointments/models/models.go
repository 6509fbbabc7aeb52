package models

import (
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListRequest фильтр списка записей для администратора
type ListRequest struct {
	From             *string // "2025-10-15", включительно
	To               *string // включительно
	Status           *string
	IncludeCancelled bool
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	VehicleMake     *string `json:"vehicleMake,omitempty"`
	VehicleModel    *string `json:"vehicleModel,omitempty"`
	VehicleYear     *int    `json:"vehicleYear,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Date            string  `json:"date"`              // "2025-10-15"
	Time            string  `json:"time"`              // "10:00"
	EndTime         string  `json:"endTime,omitempty"` // "11:30"
	Display         string  `json:"display"`           // "10:00 AM to 11:30 AM"
	Service         string  `json:"service"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
// serviceName пустой, если услуги уже нет в каталоге
func FromDomainAppointment(a *domain.Appointment, serviceName string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	if serviceName == "" {
		serviceName = a.Service
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		Reference:          a.Reference,
		CustomerName:       a.CustomerName,
		CustomerPhone:      a.CustomerPhone,
		CustomerEmail:      a.CustomerEmail,
		VehicleMake:        a.VehicleMake,
		VehicleModel:       a.VehicleModel,
		VehicleYear:        a.VehicleYear,
		Notes:              a.Notes,
		Date:               a.PreferredDate.Format(domain.DateFormat),
		Time:               a.PreferredTime.String(),
		Service:            a.Service,
		ServiceName:        serviceName,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		EndTime:            a.EndTime().String(),
		Display:            a.Display(),
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
