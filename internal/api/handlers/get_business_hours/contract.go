package get_business_hours

import (
	"context"

	"github.com/autoshop/garage-booking/internal/service/hours/models"
)

type BusinessHoursService interface {
	GetByDate(ctx context.Context, date string) (*models.BusinessHoursResponse, error)
	List(ctx context.Context, from, to string) (*models.BusinessHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
