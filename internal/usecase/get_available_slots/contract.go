package get_available_slots

import (
	"context"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveByDate получает все неотмененные записи на дату
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// HoursRepository интерфейс репозитория переопределений часов работы
type HoursRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BusinessHoursOverride, error)
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	Get(key string) (domain.Service, error)
	Resolve(key string) (int, error)
	BookedDuration(key string, stored int) int
}

// Metrics счетчики рассчитанных слотов
type Metrics interface {
	AddSlots(status string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
