package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

var errMissingStartAt = errors.New("startAt is required")

// CreateAppointmentRequest тело запроса POST /appointments
type CreateAppointmentRequest struct {
	WorkerID  int64      `json:"workerId"`
	ClientID  int64      `json:"clientId"`
	ServiceID int64      `json:"serviceId"`
	StartAt   *time.Time `json:"startAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAppointmentRequest) ToServiceRequest() (*models.CreateAppointmentRequest, error) {
	if r.StartAt == nil {
		return nil, errMissingStartAt
	}

	return &models.CreateAppointmentRequest{
		WorkerID:  r.WorkerID,
		ClientID:  r.ClientID,
		ServiceID: r.ServiceID,
		StartAt:   r.StartAt.UTC(),
	}, nil
}
