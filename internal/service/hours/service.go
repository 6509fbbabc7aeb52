package hours

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autoshop/garage-booking/internal/domain"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
	"github.com/autoshop/garage-booking/internal/service/hours/models"
	"github.com/autoshop/garage-booking/pkg/types"
)

// maxListDays ограничение периода для списка переопределений
const maxListDays = 366

// Service сервис управления часами работы
type Service struct {
	hoursRepo HoursRepository
	defaults  domain.ShopDefaults
	logger    Logger
}

// NewService создает новый экземпляр сервиса часов работы
func NewService(hoursRepo HoursRepository, defaults domain.ShopDefaults, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		defaults:  defaults,
		logger:    logger,
	}
}

// GetByDate возвращает переопределение на дату или часы по умолчанию (isDefault=true)
func (s *Service) GetByDate(ctx context.Context, dateStr string) (*models.BusinessHoursResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	override, err := s.hoursRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrOverrideNotFound) {
			hours := domain.ResolveBusinessHours(date, nil, s.defaults)
			return models.FromResolvedHours(date.Format(domain.DateFormat), hours), nil
		}
		s.logger.Error("GetByDate: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverride(override), nil
}

// List возвращает переопределения за период (включительно)
func (s *Service) List(ctx context.Context, fromStr, toStr string) (*models.BusinessHoursListResponse, error) {
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if to.Sub(from) > maxListDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, maxListDays)
	}

	overrides, err := s.hoursRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error for %s..%s: %v", fromStr, toStr, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.BusinessHoursListResponse{
		Overrides: make([]models.BusinessHoursResponse, 0, len(overrides)),
	}
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, *models.FromDomainOverride(o))
	}
	return resp, nil
}

// Upsert создает или заменяет переопределение на дату
func (s *Service) Upsert(ctx context.Context, dateStr string, req *models.UpsertRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("Upsert: business hours for date=%s, closed=%t", dateStr, req.IsClosed)

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	override, err := toDomainOverride(date, req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed for date=%s: %v", dateStr, err)
		return nil, err
	}

	saved, err := s.hoursRepo.Upsert(ctx, override)
	if err != nil {
		s.logger.Error("Upsert: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved override id=%d for date=%s", saved.ID, dateStr)
	return models.FromDomainOverride(saved), nil
}

// Delete удаляет переопределение; дата возвращается к расписанию по умолчанию
func (s *Service) Delete(ctx context.Context, dateStr string) error {
	s.logger.Info("Delete: business hours override for date=%s", dateStr)

	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	if err := s.hoursRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, hoursRepo.ErrOverrideNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error for date=%s: %v", dateStr, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return date, nil
}

// toDomainOverride валидирует запрос: время HH:MM, закрытие позже открытия, вместимость 1..20
func toDomainOverride(date time.Time, req *models.UpsertRequest) (*domain.BusinessHoursOverride, error) {
	override := &domain.BusinessHoursOverride{
		Date:                 date,
		IsClosed:             req.IsClosed,
		SimultaneousBookings: domain.DefaultSimultaneousBookings,
	}

	if req.SimultaneousBookings != nil {
		capacity := *req.SimultaneousBookings
		if capacity < domain.MinSimultaneousBookings || capacity > domain.MaxSimultaneousBookings {
			return nil, fmt.Errorf("%w: must be between %d and %d",
				ErrInvalidCapacity, domain.MinSimultaneousBookings, domain.MaxSimultaneousBookings)
		}
		override.SimultaneousBookings = capacity
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if len(note) > domain.MaxOverrideNoteLength {
			return nil, fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxOverrideNoteLength)
		}
		if note != "" {
			override.Note = &note
		}
	}

	// Для выходного дня время не хранится
	if req.IsClosed {
		return override, nil
	}

	if req.OpeningTime == nil || req.ClosingTime == nil {
		return nil, fmt.Errorf("%w: openingTime and closingTime are required when open", ErrInvalidInput)
	}

	opening, err := types.NewTimeStringFromString(*req.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openingTime: %v", ErrInvalidInput, err)
	}
	closing, err := types.NewTimeStringFromString(*req.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closingTime: %v", ErrInvalidInput, err)
	}
	if !closing.IsAfter(opening) {
		return nil, ErrInvalidTimeRange
	}

	override.OpeningTime = &opening
	override.ClosingTime = &closing
	return override, nil
}
