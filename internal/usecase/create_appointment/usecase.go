package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autoshop/garage-booking/internal/availability"
	"github.com/autoshop/garage-booking/internal/catalog"
	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/internal/infra/lock"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
	"github.com/autoshop/garage-booking/pkg/txmanager"
)

const lockKeyPrefix = "appointments:"

// UseCase use case для создания записи в мастерскую
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       HoursRepository
	catalog         ServiceCatalog
	locker          Locker
	lockTTL         time.Duration
	txManager       TransactionManager
	defaults        domain.ShopDefaults
	location        *time.Location
	metrics         Metrics
	timeProvider    TimeProvider
	newReference    func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo HoursRepository,
	catalog ServiceCatalog,
	locker Locker,
	lockTTL time.Duration,
	txManager TransactionManager,
	defaults domain.ShopDefaults,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		catalog:         catalog,
		locker:          locker,
		lockTTL:         lockTTL,
		txManager:       txManager,
		defaults:        defaults,
		location:        location,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		newReference:    uuid.NewString,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка доступности и вставка выполняются под блокировкой даты в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%s, date=%s, time=%s",
		req.Service, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Получаем текущее время в часовом поясе мастерской
	now := uc.timeProvider.Now().In(uc.location)

	// 2. Валидация входных данных
	if err := validateRequest(req, now.Year()); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Определяем длительность услуги
	duration, err := uc.catalog.Resolve(req.Service)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			uc.logger.Warn("CreateAppointment: unknown service=%s", req.Service)
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.Service)
		}
		return nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
	}

	serviceKey, serviceName := strings.ToLower(strings.TrimSpace(req.Service)), req.Service
	if svc, err := uc.catalog.Get(req.Service); err == nil {
		serviceKey, serviceName = svc.Key, svc.Name
	}

	// 4. Берем блокировку на дату
	lockKey := lockKeyPrefix + req.Date.Format(domain.DateFormat)
	release, err := uc.locker.Acquire(ctx, lockKey, uc.lockTTL)
	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		uc.logger.Warn("CreateAppointment: date %s is locked by another request", req.Date.Format(domain.DateFormat))
		return nil, ErrSlotBusy
	case err != nil:
		// Без Redis продолжаем: транзакция БД все равно сериализует запись
		uc.logger.Warn("CreateAppointment: failed to acquire lock %s, continuing without it: %v", lockKey, err)
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateAppointment: failed to release lock %s: %v", lockKey, err)
			}
		}()
	}

	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем часы работы на дату
		override, err := uc.hoursRepo.GetByDate(txCtx, req.Date)
		if err != nil && !errors.Is(err, hoursRepo.ErrOverrideNotFound) {
			uc.logger.Error("CreateAppointment: failed to get business hours: %v", err)
			return fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
		}
		hours := domain.ResolveBusinessHours(req.Date, override, uc.defaults)

		if hours.IsClosed {
			uc.logger.Warn("CreateAppointment: shop is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrShopClosed
		}

		// 5.2. Получаем неотмененные записи на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 5.3. Пересчитываем слоты тем же движком, что и для клиента
		slots, err := availability.Calculate(availability.Input{
			Date:            req.Date,
			DurationMinutes: duration,
			Booked:          availability.FromAppointments(appointments, uc.catalog.BookedDuration),
			Hours:           hours,
			Now:             now,
		})
		if err != nil {
			if !hours.IsDefault {
				uc.logger.Warn("CreateAppointment: override for %s is invalid: %v", req.Date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: %v", ErrInvalidBusinessHours, err)
			}
			uc.logger.Error("CreateAppointment: failed to calculate slots: %v", err)
			return fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
		}

		// 5.4. Проверяем выбранный слот
		slot, ok := availability.FindSlot(slots, req.Time)
		if !ok {
			uc.logger.Warn("CreateAppointment: time %s is outside business hours", req.Time)
			return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.Time)
		}
		if !slot.IsAvailable() {
			uc.logger.Warn("CreateAppointment: slot %s is unavailable: %s", req.Time, slot.Message)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, slot.Message)
		}

		// 5.5. Создаем запись
		appointment := &domain.Appointment{
			Reference:       uc.newReference(),
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			CustomerEmail:   trimOptional(req.CustomerEmail),
			VehicleMake:     trimOptional(req.VehicleMake),
			VehicleModel:    trimOptional(req.VehicleModel),
			VehicleYear:     req.VehicleYear,
			Notes:           trimOptional(req.Notes),
			PreferredDate:   req.Date,
			PreferredTime:   req.Time,
			Service:         serviceKey,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// PostgreSQL отменил одну из конкурирующих транзакций
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict on %s", req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotNotAvailable)
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommit) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, reference=%s", result.ID, result.Reference)

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		CustomerEmail:   result.CustomerEmail,
		VehicleMake:     result.VehicleMake,
		VehicleModel:    result.VehicleModel,
		VehicleYear:     result.VehicleYear,
		Notes:           result.Notes,
		Service:         result.Service,
		ServiceName:     serviceName,
		Date:            result.PreferredDate,
		Time:            result.PreferredTime,
		EndTime:         result.EndTime(),
		Display:         result.Display(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// observe считает исход создания записи
func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	outcome := OutcomeCreated
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		outcome = OutcomeConflict
	case errors.Is(err, ErrSlotBusy):
		outcome = OutcomeBusy
	case errors.Is(err, ErrInternal):
		outcome = OutcomeError
	default:
		outcome = OutcomeRejected
	}
	uc.metrics.IncAppointmentCreate(outcome)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
