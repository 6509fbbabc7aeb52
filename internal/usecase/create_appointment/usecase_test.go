package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autoshop/garage-booking/internal/catalog"
	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/internal/infra/lock"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
	"github.com/autoshop/garage-booking/pkg/logger"
	"github.com/autoshop/garage-booking/pkg/ptr"
	"github.com/autoshop/garage-booking/pkg/types"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type mockHoursRepo struct {
	mock.Mock
}

func (m *mockHoursRepo) GetByDate(ctx context.Context, date time.Time) (*domain.BusinessHoursOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessHoursOverride), args.Error(1)
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls     int
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fakeLocker struct {
	err      error
	keys     []string
	released int
}

func (f *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (lock.ReleaseFunc, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return func(context.Context) error {
		f.released++
		return nil
	}, nil
}

type outcomeCounter struct {
	outcomes []string
}

func (o *outcomeCounter) IncAppointmentCreate(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	uc           *UseCase
	appointments *mockAppointmentRepo
	hours        *mockHoursRepo
	locker       *fakeLocker
	tx           *fakeTxManager
	metrics      *outcomeCounter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	cat, err := catalog.New([]domain.Service{
		{Key: "oil-change", Name: "Oil change", DurationMinutes: 30},
		{Key: "brake-service", Name: "Brake service", DurationMinutes: 90},
	}, domain.DefaultServiceDurationMinutes, true)
	require.NoError(t, err)

	env := &testEnv{
		appointments: new(mockAppointmentRepo),
		hours:        new(mockHoursRepo),
		locker:       &fakeLocker{},
		tx:           &fakeTxManager{},
		metrics:      &outcomeCounter{},
	}
	env.uc = NewUseCase(env.appointments, env.hours, cat, env.locker, 10*time.Second, env.tx,
		domain.DefaultShopDefaults(), loc, env.metrics, logger.Nop())
	env.uc.timeProvider = fixedTime{now: time.Date(2025, time.March, 1, 12, 0, 0, 0, loc)}
	env.uc.newReference = func() string { return "9b2f6d1e-8a41-4c0e-9d57-1f3a2b4c5d6e" }

	return env
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "  Jane Doe ",
		CustomerPhone: "+1 (555) 123-4567",
		CustomerEmail: ptr.Ptr("jane@example.com"),
		VehicleMake:   ptr.Ptr("Toyota"),
		VehicleModel:  ptr.Ptr("Corolla"),
		VehicleYear:   ptr.Ptr(2018),
		Service:       "Brake-Service",
		Date:          monday,
		Time:          "09:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.hours.On("GetByDate", ctx, monday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
	env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{
		{ID: 7, PreferredTime: "09:00", Service: "brake-service", DurationMinutes: 90, Status: domain.StatusConfirmed},
	}, nil).Once()
	env.appointments.On("Create", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.CustomerName == "Jane Doe" &&
			a.Service == "brake-service" &&
			a.DurationMinutes == 90 &&
			a.Status == domain.StatusPending &&
			a.PreferredTime == "09:00" &&
			a.Reference == "9b2f6d1e-8a41-4c0e-9d57-1f3a2b4c5d6e"
	})).Return(func(_ context.Context, a *domain.Appointment) *domain.Appointment {
		created := *a
		created.ID = 42
		return &created
	}, nil).Once()

	resp, err := env.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Brake service", resp.ServiceName)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, "9:00 AM to 10:30 AM", resp.Display)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	assert.Equal(t, []string{"appointments:2025-03-03"}, env.locker.keys)
	assert.Equal(t, 1, env.locker.released)
	assert.Equal(t, 1, env.tx.calls)
	assert.Equal(t, []string{OutcomeCreated}, env.metrics.outcomes)
	env.appointments.AssertExpectations(t)
}

func TestUseCase_Execute_SlotFull(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.hours.On("GetByDate", ctx, monday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
	env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{
		{ID: 1, PreferredTime: "10:00", Service: "oil-change", DurationMinutes: 30, Status: domain.StatusPending},
		{ID: 2, PreferredTime: "10:00", Service: "oil-change", DurationMinutes: 30, Status: domain.StatusInProgress},
	}, nil).Once()

	_, err := env.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Contains(t, err.Error(), "Fully booked during service period")
	assert.Equal(t, []string{OutcomeConflict}, env.metrics.outcomes)
	assert.Equal(t, 1, env.locker.released)
	env.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_SlotRules(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		time    types.TimeString
		date    time.Time
		wantErr error
	}{
		{name: "beyond closing", time: "18:00", date: monday, wantErr: ErrSlotNotAvailable},
		{name: "before opening", time: "06:30", date: monday, wantErr: ErrInvalidTimeSlot},
		{name: "after closing", time: "19:00", date: monday, wantErr: ErrInvalidTimeSlot},
		{name: "in the past", time: "09:00", date: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), wantErr: ErrSlotNotAvailable},
		{name: "closed weekday", time: "09:00", date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), wantErr: ErrShopClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.hours.On("GetByDate", ctx, tt.date).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
			env.appointments.On("GetActiveByDate", ctx, tt.date).Return([]*domain.Appointment{}, nil).Maybe()

			req := validRequest()
			req.Date = tt.date
			req.Time = tt.time

			_, err := env.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
			env.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "empty name", modify: func(r *Request) { r.CustomerName = "  " }},
		{name: "empty phone", modify: func(r *Request) { r.CustomerPhone = "" }},
		{name: "phone with letters", modify: func(r *Request) { r.CustomerPhone = "555-CALL-NOW" }},
		{name: "short phone", modify: func(r *Request) { r.CustomerPhone = "12345" }},
		{name: "bad email", modify: func(r *Request) { r.CustomerEmail = ptr.Ptr("not-an-email") }},
		{name: "no service", modify: func(r *Request) { r.Service = "" }},
		{name: "no date", modify: func(r *Request) { r.Date = time.Time{} }},
		{name: "no time", modify: func(r *Request) { r.Time = "" }},
		{name: "bad time", modify: func(r *Request) { r.Time = "25:00" }},
		{name: "off grid", modify: func(r *Request) { r.Time = "09:15" }},
		{name: "vehicle year", modify: func(r *Request) { r.VehicleYear = ptr.Ptr(1850) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := validRequest()
			tt.modify(req)

			_, err := env.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, env.locker.keys)
			assert.Equal(t, []string{OutcomeRejected}, env.metrics.outcomes)
		})
	}
}

func TestUseCase_Execute_UnknownService(t *testing.T) {
	env := newTestEnv(t)
	req := validRequest()
	req.Service = "teleport"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_Locking(t *testing.T) {
	ctx := context.Background()

	t.Run("busy lock", func(t *testing.T) {
		env := newTestEnv(t)
		env.locker.err = lock.ErrNotAcquired

		_, err := env.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotBusy)
		assert.Equal(t, 0, env.tx.calls)
		assert.Equal(t, []string{OutcomeBusy}, env.metrics.outcomes)
	})

	t.Run("redis down falls back to transaction", func(t *testing.T) {
		env := newTestEnv(t)
		env.locker.err = lock.ErrRedis
		env.hours.On("GetByDate", ctx, monday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
		env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{}, nil).Once()
		env.appointments.On("Create", ctx, mock.Anything).Return(&domain.Appointment{ID: 1, PreferredTime: "09:00", DurationMinutes: 90}, nil).Once()

		_, err := env.uc.Execute(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, env.tx.calls)
	})

	t.Run("date held in redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		locker := lock.NewRedisLocker(client)
		_, err := locker.Acquire(ctx, "appointments:2025-03-03", time.Minute)
		require.NoError(t, err)

		env := newTestEnv(t)
		env.uc.locker = locker

		_, err = env.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotBusy)
	})
}

func TestUseCase_Execute_SerializationFailure(t *testing.T) {
	ctx := context.Background()
	conflict := &pq.Error{Code: "40001"}

	tests := []struct {
		name  string
		setup func(env *testEnv)
	}{
		{
			name: "on commit",
			setup: func(env *testEnv) {
				env.tx.commitErr = conflict
				env.hours.On("GetByDate", ctx, monday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
				env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{}, nil).Once()
				env.appointments.On("Create", ctx, mock.Anything).Return(&domain.Appointment{ID: 1}, nil).Once()
			},
		},
		{
			name: "on business hours read",
			setup: func(env *testEnv) {
				env.hours.On("GetByDate", ctx, monday).Return(nil, conflict).Once()
			},
		},
		{
			name: "on appointments read",
			setup: func(env *testEnv) {
				env.hours.On("GetByDate", ctx, monday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()
				env.appointments.On("GetActiveByDate", ctx, monday).Return(nil, conflict).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			_, err := env.uc.Execute(ctx, validRequest())
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Equal(t, []string{OutcomeConflict}, env.metrics.outcomes)
		})
	}
}

func TestUseCase_Execute_Overrides(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid override", func(t *testing.T) {
		env := newTestEnv(t)
		env.hours.On("GetByDate", ctx, monday).Return(&domain.BusinessHoursOverride{
			Date:        monday,
			OpeningTime: ptr.Ptr[types.TimeString]("15:00"),
			ClosingTime: ptr.Ptr[types.TimeString]("09:00"),
		}, nil).Once()
		env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{}, nil).Once()

		_, err := env.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrInvalidBusinessHours)
	})

	t.Run("capacity one", func(t *testing.T) {
		env := newTestEnv(t)
		env.hours.On("GetByDate", ctx, monday).Return(&domain.BusinessHoursOverride{
			Date:                 monday,
			OpeningTime:          ptr.Ptr[types.TimeString]("08:00"),
			ClosingTime:          ptr.Ptr[types.TimeString]("12:00"),
			SimultaneousBookings: 1,
		}, nil).Once()
		env.appointments.On("GetActiveByDate", ctx, monday).Return([]*domain.Appointment{
			{ID: 3, PreferredTime: "10:00", Service: "oil-change", DurationMinutes: 30, Status: domain.StatusPending},
		}, nil).Once()

		_, err := env.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("repository failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.hours.On("GetByDate", ctx, monday).Return(nil, errors.New("connection reset")).Once()

		_, err := env.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{OutcomeError}, env.metrics.outcomes)
	})
}
