package hours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/autoshop/garage-booking/internal/domain"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
	"github.com/autoshop/garage-booking/internal/service/hours/models"
	"github.com/autoshop/garage-booking/pkg/logger"
	"github.com/autoshop/garage-booking/pkg/ptr"
	"github.com/autoshop/garage-booking/pkg/types"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByDate(ctx context.Context, date time.Time) (*domain.BusinessHoursOverride, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessHoursOverride), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, from, to time.Time) ([]*domain.BusinessHoursOverride, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BusinessHoursOverride), args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, o *domain.BusinessHoursOverride) (*domain.BusinessHoursOverride, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessHoursOverride), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

var christmasEve = time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC)

func TestService_GetByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when no override", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())
		sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
		repo.On("GetByDate", ctx, sunday).Return(nil, hoursRepo.ErrOverrideNotFound).Once()

		resp, err := svc.GetByDate(ctx, "2025-03-02")
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.True(t, resp.IsClosed)
		assert.Nil(t, resp.OpeningTime)
	})

	t.Run("override", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())
		repo.On("GetByDate", ctx, christmasEve).Return(&domain.BusinessHoursOverride{
			Date:                 christmasEve,
			OpeningTime:          ptr.Ptr[types.TimeString]("07:00"),
			ClosingTime:          ptr.Ptr[types.TimeString]("12:00"),
			SimultaneousBookings: 1,
		}, nil).Once()

		resp, err := svc.GetByDate(ctx, "2025-12-24")
		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
		assert.Equal(t, "12:00", *resp.ClosingTime)
		assert.Equal(t, 1, resp.SimultaneousBookings)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := NewService(new(mockRepo), domain.DefaultShopDefaults(), logger.Nop())
		_, err := svc.GetByDate(ctx, "24.12.2025")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("open day", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())

		expected := &domain.BusinessHoursOverride{
			Date:                 christmasEve,
			OpeningTime:          ptr.Ptr[types.TimeString]("08:00"),
			ClosingTime:          ptr.Ptr[types.TimeString]("12:00"),
			SimultaneousBookings: 1,
			Note:                 ptr.Ptr("short day"),
		}
		repo.On("Upsert", ctx, expected).Return(expected, nil).Once()

		resp, err := svc.Upsert(ctx, "2025-12-24", &models.UpsertRequest{
			OpeningTime:          ptr.Ptr("08:00"),
			ClosingTime:          ptr.Ptr("12:00"),
			SimultaneousBookings: ptr.Ptr(1),
			Note:                 ptr.Ptr(" short day "),
		})
		require.NoError(t, err)
		assert.Equal(t, "08:00", *resp.OpeningTime)
		repo.AssertExpectations(t)
	})

	t.Run("closed day drops times", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())

		expected := &domain.BusinessHoursOverride{Date: christmasEve, IsClosed: true, SimultaneousBookings: 2}
		repo.On("Upsert", ctx, expected).Return(expected, nil).Once()

		resp, err := svc.Upsert(ctx, "2025-12-24", &models.UpsertRequest{
			IsClosed:    true,
			OpeningTime: ptr.Ptr("garbage"),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsClosed)
	})

	invalid := []struct {
		name    string
		req     models.UpsertRequest
		wantErr error
	}{
		{"missing times", models.UpsertRequest{OpeningTime: ptr.Ptr("08:00")}, ErrInvalidInput},
		{"bad time", models.UpsertRequest{OpeningTime: ptr.Ptr("8am"), ClosingTime: ptr.Ptr("12:00")}, ErrInvalidInput},
		{"closing before opening", models.UpsertRequest{OpeningTime: ptr.Ptr("12:00"), ClosingTime: ptr.Ptr("12:00")}, ErrInvalidTimeRange},
		{"zero capacity", models.UpsertRequest{IsClosed: true, SimultaneousBookings: ptr.Ptr(0)}, ErrInvalidCapacity},
		{"capacity too high", models.UpsertRequest{IsClosed: true, SimultaneousBookings: ptr.Ptr(21)}, ErrInvalidCapacity},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())

			_, err := svc.Upsert(ctx, "2025-12-24", &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewService(repo, domain.DefaultShopDefaults(), logger.Nop())

	from := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	repo.On("List", ctx, from, christmasEve).
		Return([]*domain.BusinessHoursOverride{{Date: christmasEve, IsClosed: true, SimultaneousBookings: 2}}, nil).Once()

	resp, err := svc.List(ctx, "2025-12-01", "2025-12-24")
	require.NoError(t, err)
	require.Len(t, resp.Overrides, 1)
	assert.Equal(t, "2025-12-24", resp.Overrides[0].Date)

	_, err = svc.List(ctx, "2025-12-24", "2025-12-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.On("Delete", ctx, christmasEve).Return(hoursRepo.ErrOverrideNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, "2025-12-24"), ErrOverrideNotFound)
}
