package get_appointment

import (
	"context"

	"github.com/autoshop/garage-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByReference(ctx context.Context, reference string) (*models.AppointmentResponse, error)
	GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
