package cancel_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/autoshop/garage-booking/internal/service/appointments"
	"github.com/autoshop/garage-booking/internal/service/appointments/models"
	"github.com/autoshop/garage-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CancelByReference(ctx context.Context, reference string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, reference, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func (m *mockService) CancelByID(ctx context.Context, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{reference}/cancel", h.Handle).Methods(http.MethodPatch)
	r.HandleFunc("/api/v1/admin/appointments/{id}/cancel", h.HandleByID).Methods(http.MethodPatch)
	return r
}

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	svc.On("CancelByReference", mock.Anything, "abc-123", &models.CancelRequest{CancellationReason: "car sold"}).
		Return(&models.AppointmentResponse{ID: 5, Status: "cancelled"}, nil).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc-123/cancel",
		strings.NewReader(`{"cancellationReason":"car sold"}`))
	newRouter(NewHandler(svc, logger.Nop())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	svc.AssertExpectations(t)
}

func TestHandler_HandleByID_EmptyBody(t *testing.T) {
	svc := new(mockService)
	svc.On("CancelByID", mock.Anything, int64(9), &models.CancelRequest{}).
		Return(&models.AppointmentResponse{ID: 9, Status: "cancelled"}, nil).Once()

	rec := httptest.NewRecorder()
	newRouter(NewHandler(svc, logger.Nop())).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPatch, "/api/v1/admin/appointments/9/cancel", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "final status", err: appointments.ErrCannotCancel, wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CancelByReference", mock.Anything, "abc-123", mock.Anything).Return(nil, tt.err).Once()

			rec := httptest.NewRecorder()
			newRouter(NewHandler(svc, logger.Nop())).ServeHTTP(rec,
				httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc-123/cancel", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("bad id", func(t *testing.T) {
		svc := new(mockService)
		rec := httptest.NewRecorder()
		newRouter(NewHandler(svc, logger.Nop())).ServeHTTP(rec,
			httptest.NewRequest(http.MethodPatch, "/api/v1/admin/appointments/abc/cancel", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CancelByID", mock.Anything, mock.Anything, mock.Anything)
	})
}
