package update_business_hours

import (
	"context"

	"github.com/autoshop/garage-booking/internal/service/hours/models"
)

type BusinessHoursService interface {
	Upsert(ctx context.Context, date string, req *models.UpsertRequest) (*models.BusinessHoursResponse, error)
	Delete(ctx context.Context, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
