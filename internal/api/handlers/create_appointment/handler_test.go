package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type stubService struct {
	got *models.CreateAppointmentRequest
	err error
}

func (s *stubService) Create(_ context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{
		ID:        1,
		WorkerID:  req.WorkerID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StartAt:   req.StartAt,
		EndAt:     req.StartAt.Add(30 * time.Minute),
	}, nil
}

const validBody = `{"workerId":5,"clientId":7,"serviceId":3,"startAt":"2024-01-01T12:00:00+03:00"}`

func TestHandle_Created(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBody)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), svc.got.StartAt)
	assert.Contains(t, rec.Body.String(), `"endAt":"2024-01-01T09:30:00Z"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed json", `{"workerId":`, nil, http.StatusBadRequest},
		{"missing startAt", `{"workerId":5,"clientId":7,"serviceId":3}`, nil, http.StatusBadRequest},
		{"validation", validBody, fmt.Errorf("%w: workerId must be positive", appointments.ErrInvalidInput), http.StatusBadRequest},
		{"service not found", validBody, appointments.ErrServiceNotFound, http.StatusNotFound},
		{"worker not found", validBody, appointments.ErrWorkerNotFound, http.StatusNotFound},
		{"client not found", validBody, appointments.ErrReferenceNotFound, http.StatusNotFound},
		{"conflict", validBody, fmt.Errorf("%w: Create - overlap", appointments.ErrConflict), http.StatusConflict},
		{"internal", validBody, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
