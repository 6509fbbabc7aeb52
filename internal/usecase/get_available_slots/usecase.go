package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autoshop/garage-booking/internal/availability"
	"github.com/autoshop/garage-booking/internal/catalog"
	"github.com/autoshop/garage-booking/internal/domain"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       HoursRepository
	catalog         ServiceCatalog
	defaults        domain.ShopDefaults
	location        *time.Location
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo HoursRepository,
	catalog ServiceCatalog,
	defaults domain.ShopDefaults,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		catalog:         catalog,
		defaults:        defaults,
		location:        location,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.Service, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность услуги
	duration, err := uc.catalog.Resolve(req.Service)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			uc.logger.Warn("GetAvailableSlots: unknown service=%s", req.Service)
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.Service)
		}
		return nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            req.Date,
		Service:         req.Service,
		ServiceName:     req.Service,
		DurationMinutes: duration,
		Slots:           []domain.Slot{},
	}
	if svc, err := uc.catalog.Get(req.Service); err == nil {
		resp.Service = svc.Key
		resp.ServiceName = svc.Name
	}

	// 3. Получаем часы работы на дату (переопределение или расписание по умолчанию)
	override, err := uc.hoursRepo.GetByDate(ctx, req.Date)
	if err != nil && !errors.Is(err, hoursRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}
	hours := domain.ResolveBusinessHours(req.Date, override, uc.defaults)

	if hours.IsClosed {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date.Format(domain.DateFormat))
		resp.Closed = true
		resp.Message = MessageClosed
		return resp, nil
	}

	// 4. Получаем все неотмененные записи на эту дату
	appointments, err := uc.appointmentRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Рассчитываем слоты
	slots, err := availability.Calculate(availability.Input{
		Date:            req.Date,
		DurationMinutes: duration,
		Booked:          availability.FromAppointments(appointments, uc.catalog.BookedDuration),
		Hours:           hours,
		Now:             uc.timeProvider.Now().In(uc.location),
	})
	if err != nil {
		if !hours.IsDefault {
			uc.logger.Warn("GetAvailableSlots: override for %s is invalid: %v", req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidBusinessHours, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to calculate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
	}

	resp.Slots = slots
	available := countAvailable(slots)
	if available == 0 {
		resp.Message = MessageNoAvailable
	}

	if uc.metrics != nil {
		uc.metrics.AddSlots(string(domain.SlotAvailable), available)
		uc.metrics.AddSlots(string(domain.SlotUnavailable), len(slots)-available)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for service=%s, date=%s",
		available, len(slots), req.Service, req.Date.Format(domain.DateFormat))

	return resp, nil
}

func countAvailable(slots []domain.Slot) int {
	count := 0
	for i := range slots {
		if slots[i].IsAvailable() {
			count++
		}
	}
	return count
}
