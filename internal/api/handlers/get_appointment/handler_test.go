package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func (m *mockService) GetByReference(ctx context.Context, reference string) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{reference}", h.Handle).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/admin/appointments/{id}", h.HandleByID).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByReference", mock.Anything, "abc-123").
		Return(&models.AppointmentResponse{ID: 1, Reference: "abc-123", Display: "9:00 AM to 10:30 AM"}, nil).Once()
	svc.On("GetByReference", mock.Anything, "missing").Return(nil, appointments.ErrAppointmentNotFound).Once()

	h := NewHandler(svc, logger.Nop())

	rec := serve(h, "/api/v1/appointments/abc-123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display":"9:00 AM to 10:30 AM"`)

	rec = serve(h, "/api/v1/appointments/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HandleByID(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByID", mock.Anything, int64(12)).Return(&models.AppointmentResponse{ID: 12}, nil).Once()

	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusOK, serve(h, "/api/v1/admin/appointments/12").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/admin/appointments/twelve").Code)
	svc.AssertExpectations(t)
}
