package create_appointment

import (
	"context"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/internal/infra/lock"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает новую запись
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)

	// GetActiveByDate получает неотмененные записи на дату (FOR UPDATE внутри транзакции)
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

// Locker advisory-блокировка на дату
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (lock.ReleaseFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	// DoSerializable выполняет функцию в транзакции с уровнем изоляции SERIALIZABLE
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов создания записи
type Metrics interface {
	IncAppointmentCreate(outcome string)
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
