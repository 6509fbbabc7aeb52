package hours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/pkg/dbmetrics"
	"github.com/autoshop/garage-booking/pkg/psqlbuilder"
)

const table = "business_hours_overrides"

var columns = []string{
	"id",
	"date",
	"is_closed",
	"opening_time",
	"closing_time",
	"simultaneous_bookings",
	"note",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий переопределений часов работы по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает переопределение на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.BusinessHoursOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan override: %w", ErrScanRow, err)
	}

	return override, nil
}

// List получает переопределения за период (границы включительно), по возрастанию даты
func (r *Repository) List(ctx context.Context, from, to time.Time) ([]*domain.BusinessHoursOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.BusinessHoursOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert создает переопределение или обновляет существующее для той же даты
func (r *Repository) Upsert(ctx context.Context, o *domain.BusinessHoursOverride) (*domain.BusinessHoursOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"date",
			"is_closed",
			"opening_time",
			"closing_time",
			"simultaneous_bookings",
			"note",
		).
		Values(
			o.Date.Format(domain.DateFormat),
			o.IsClosed,
			o.OpeningTime,
			o.ClosingTime,
			o.SimultaneousBookings,
			o.Note,
		).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			simultaneous_bookings = EXCLUDED.simultaneous_bookings,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// Delete удаляет переопределение; дата возвращается к расписанию по умолчанию
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func scanOverride(row rowScanner) (*domain.BusinessHoursOverride, error) {
	var (
		o                    domain.BusinessHoursOverride
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.Date,
		&o.IsClosed,
		&o.OpeningTime,
		&o.ClosingTime,
		&o.SimultaneousBookings,
		&o.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
