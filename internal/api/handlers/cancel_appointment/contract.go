package cancel_appointment

import (
	"context"

	"github.com/autoshop/garage-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	CancelByReference(ctx context.Context, reference string, req *models.CancelRequest) (*models.AppointmentResponse, error)
	CancelByID(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
