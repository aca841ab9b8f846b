package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments"
	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type stubService struct{}

func (stubService) GetByID(_ context.Context, id int64) (*models.AppointmentResponse, error) {
	if id != 42 {
		return nil, appointments.ErrAppointmentNotFound
	}
	return &models.AppointmentResponse{ID: 42}, nil
}

func TestHandle(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}", NewHandler(stubService{}, logger.NewNop()).Handle)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/appointments/42", http.StatusOK},
		{"/appointments/43", http.StatusNotFound},
		{"/appointments/abc", http.StatusBadRequest},
		{"/appointments/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
