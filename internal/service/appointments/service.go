package appointments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	appointmentRepo "github.com/autoshop/garage-booking/internal/infra/storage/appointment"
	"github.com/autoshop/garage-booking/internal/service/appointments/models"
	"github.com/autoshop/garage-booking/pkg/ptr"
)

// Service сервис для работы с записями на обслуживание
type Service struct {
	appointmentRepo AppointmentRepository
	catalog         ServiceCatalog
	exporter        ScheduleExporter
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalog ServiceCatalog,
	exporter ScheduleExporter,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		exporter:        exporter,
		logger:          logger,
	}
}

// GetByReference получает запись по коду подтверждения (для клиента)
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByReference: fetching appointment ref=%s", reference)

	appointment, err := s.getByReference(ctx, "GetByReference", reference)
	if err != nil {
		return nil, err
	}

	return s.toResponse(appointment), nil
}

// GetByID получает запись по ID (для администратора)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.getByID(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(appointment), nil
}

// List получает записи по фильтру, по возрастанию даты и времени
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	appointments, err := s.list(ctx, "List", req)
	if err != nil {
		return nil, err
	}

	resp := &models.AppointmentListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *s.toResponse(a))
	}

	s.logger.Info("List: fetched %d appointments", len(appointments))
	return resp, nil
}

// Export пишет в w расписание за период в формате XLSX
func (s *Service) Export(ctx context.Context, req *models.ListRequest, w io.Writer) error {
	appointments, err := s.list(ctx, "Export", req)
	if err != nil {
		return err
	}

	if err := s.exporter.Write(w, appointments); err != nil {
		s.logger.Error("Export: failed to write schedule: %v", err)
		return fmt.Errorf("%w: Export - write schedule: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d appointments", len(appointments))
	return nil
}

// UpdateStatus устанавливает статус записи.
// Допускается переход из любого известного статуса в любой другой.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, status=%s", id, req.Status)

	status, ok := domain.ParseAppointmentStatus(strings.TrimSpace(req.Status))
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if status == domain.StatusCancelled {
		// Отмена идет через Cancel, чтобы сохранить причину и время
		return s.CancelByID(ctx, id, &models.CancelRequest{})
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appointment, err := s.getByID(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, status)
	return s.toResponse(appointment), nil
}

// CancelByID отменяет запись (администратор)
func (s *Service) CancelByID(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelByID: cancelling appointment id=%d", id)

	appointment, err := s.getByID(ctx, "CancelByID", id)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, "CancelByID", appointment, req)
}

// CancelByReference отменяет запись по коду подтверждения (клиент)
func (s *Service) CancelByReference(ctx context.Context, reference string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelByReference: cancelling appointment ref=%s", reference)

	appointment, err := s.getByReference(ctx, "CancelByReference", reference)
	if err != nil {
		return nil, err
	}

	return s.cancel(ctx, "CancelByReference", appointment, req)
}

func (s *Service) cancel(ctx context.Context, op string, appointment *domain.Appointment, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	reason := strings.TrimSpace(req.CancellationReason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is longer than %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("%s: appointment id=%d cannot be cancelled, status=%s", op, appointment.ID, appointment.Status)
		return nil, ErrCannotCancel
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = ptr.Ptr(reason)
	}

	if err := s.appointmentRepo.Cancel(ctx, appointment.ID, reasonPtr); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appointment.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	now := time.Now()
	appointment.Status = domain.StatusCancelled
	appointment.CancellationReason = reasonPtr
	appointment.CancelledAt = &now

	s.logger.Info("%s: appointment id=%d cancelled", op, appointment.ID)
	return s.toResponse(appointment), nil
}

func (s *Service) getByID(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) getByReference(ctx context.Context, op string, reference string) (*domain.Appointment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment ref=%s not found", op, reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment ref=%s: %v", op, reference, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) list(ctx context.Context, op string, req *models.ListRequest) ([]*domain.Appointment, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, err
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointments, nil
}

func (s *Service) toResponse(a *domain.Appointment) *models.AppointmentResponse {
	var name string
	if svc, err := s.catalog.Get(a.Service); err == nil {
		name = svc.Name
	}
	return models.FromDomainAppointment(a, name)
}

// toDomainFilter разбирает даты и статус фильтра
func toDomainFilter(req *models.ListRequest) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{IncludeCancelled: req.IncludeCancelled}

	parseDate := func(name string, value *string) (*time.Time, error) {
		if value == nil || strings.TrimSpace(*value) == "" {
			return nil, nil
		}
		d, err := time.Parse(domain.DateFormat, strings.TrimSpace(*value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, name)
		}
		return &d, nil
	}

	var err error
	if filter.From, err = parseDate("from", req.From); err != nil {
		return filter, err
	}
	if filter.To, err = parseDate("to", req.To); err != nil {
		return filter, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	if req.Status != nil && *req.Status != "" {
		status, ok := domain.ParseAppointmentStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}
