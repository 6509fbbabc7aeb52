package create_appointment

import (
	"time"

	"github.com/autoshop/garage-booking/pkg/types"
)

// Исходы создания записи для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeBusy     = "busy"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	VehicleMake   *string
	VehicleModel  *string
	VehicleYear   *int
	Notes         *string
	Service       string
	Date          time.Time        // Дата (без времени)
	Time          types.TimeString // Время начала HH:MM
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	Reference       string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	VehicleMake     *string
	VehicleModel    *string
	VehicleYear     *int
	Notes           *string
	Service         string
	ServiceName     string
	Date            time.Time
	Time            types.TimeString
	EndTime         types.TimeString
	Display         string
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
