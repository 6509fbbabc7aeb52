package appointments

import (
	"context"
	"io"

	"github.com/autoshop/garage-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByReference(ctx context.Context, reference string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// ServiceCatalog каталог услуг (названия для ответов)
type ServiceCatalog interface {
	Get(key string) (domain.Service, error)
}

// ScheduleExporter формирует файл расписания
type ScheduleExporter interface {
	Write(w io.Writer, appointments []*domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
