package hours

import (
	"context"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
)

// HoursRepository интерфейс репозитория переопределений часов работы
type HoursRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BusinessHoursOverride, error)
	List(ctx context.Context, from, to time.Time) ([]*domain.BusinessHoursOverride, error)
	Upsert(ctx context.Context, override *domain.BusinessHoursOverride) (*domain.BusinessHoursOverride, error)
	Delete(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
