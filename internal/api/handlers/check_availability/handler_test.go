package check_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-QueueService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type stubUseCase struct{}

func (stubUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	if req.ServiceID == 99 {
		return nil, checkAvailability.ErrServiceNotFound
	}
	return &checkAvailability.Response{
		WorkerID:  req.WorkerID,
		ServiceID: req.ServiceID,
		StartAt:   req.StartAt,
		EndAt:     domain.CalculateEndAt(req.StartAt, 30),
		Available: true,
	}, nil
}

func TestHandle(t *testing.T) {
	h := NewHandler(stubUseCase{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/appointments/availability?workerId=5&serviceId=3&startAt=2024-01-01T09:00:00Z", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	want := `{"workerId":5,"serviceId":3,"startAt":"2024-01-01T09:00:00Z","endAt":"2024-01-01T09:30:00Z","available":true}`
	assert.JSONEq(t, want, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(stubUseCase{}, logger.NewNop())

	tests := []struct {
		query      string
		wantStatus int
	}{
		{"?workerId=5&serviceId=3", http.StatusBadRequest},
		{"?workerId=x&serviceId=3&startAt=2024-01-01T09:00:00Z", http.StatusBadRequest},
		{"?workerId=5&serviceId=99&startAt=2024-01-01T09:00:00Z", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/availability"+tt.query, nil))
		assert.Equal(t, tt.wantStatus, rec.Code, tt.query)
	}
}
