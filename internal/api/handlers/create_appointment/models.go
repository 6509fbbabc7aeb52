package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	createAppointment "github.com/autoshop/garage-booking/internal/usecase/create_appointment"
	"github.com/autoshop/garage-booking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	VehicleMake   *string `json:"vehicleMake,omitempty"`
	VehicleModel  *string `json:"vehicleModel,omitempty"`
	VehicleYear   *int    `json:"vehicleYear,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Service       string  `json:"service"`
	Date          string  `json:"date"` // "2025-10-15"
	Time          string  `json:"time"` // "10:00"
}

// AppointmentResponse HTTP response model
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
	Service         string  `json:"service"`
	ServiceName     string  `json:"serviceName"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	EndTime         string  `json:"endTime,omitempty"`
	Display         string  `json:"display"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// errInvalidDate и errInvalidTime различают ошибки парсинга для ответа клиенту
var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createAppointment.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		VehicleMake:   r.VehicleMake,
		VehicleModel:  r.VehicleModel,
		VehicleYear:   r.VehicleYear,
		Notes:         r.Notes,
		Service:       r.Service,
		Date:          date,
		Time:          startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		CustomerEmail:   resp.CustomerEmail,
		VehicleMake:     resp.VehicleMake,
		VehicleModel:    resp.VehicleModel,
		VehicleYear:     resp.VehicleYear,
		Notes:           resp.Notes,
		Service:         resp.Service,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		EndTime:         resp.EndTime.String(),
		Display:         resp.Display,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
