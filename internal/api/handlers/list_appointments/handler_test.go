package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type stubService struct {
	got *models.ListAppointmentsRequest
}

func (s *stubService) FindAll(_ context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.got = req
	if !req.ToDomainFilter().HasValidRange() {
		return nil, appointments.ErrInvalidInput
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}, {ID: 2}}}, nil
}

func TestHandle_Filters(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/appointments?workerId=5&excludeWorkerId=6&dateFrom=2024-01-01T00:00:00Z&dateTo=2024-01-02T00:00:00Z", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(5), *svc.got.WorkerID)
	assert.Equal(t, int64(6), *svc.got.ExcludeWorkerID)
	assert.Nil(t, svc.got.ClientID)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *svc.got.DateTo)
	assert.Contains(t, rec.Body.String(), `"appointments":[`)
}

func TestHandle_BadRequest(t *testing.T) {
	h := NewHandler(&stubService{}, logger.NewNop())

	for _, query := range []string{
		"?workerId=abc",
		"?dateFrom=2024-01-01",
		"?dateFrom=2024-01-02T00:00:00Z&dateTo=2024-01-01T00:00:00Z",
	} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}
