package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-QueueService/internal/service/appointments/models"
)

// UpdateAppointmentRequest тело запроса PATCH /appointments/{id}.
// Не переданные поля не меняются.
type UpdateAppointmentRequest struct {
	WorkerID  *int64     `json:"workerId"`
	ClientID  *int64     `json:"clientId"`
	ServiceID *int64     `json:"serviceId"`
	StartAt   *time.Time `json:"startAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() *models.UpdateAppointmentRequest {
	req := &models.UpdateAppointmentRequest{
		WorkerID:  r.WorkerID,
		ClientID:  r.ClientID,
		ServiceID: r.ServiceID,
	}
	if r.StartAt != nil {
		startAt := r.StartAt.UTC()
		req.StartAt = &startAt
	}
	return req
}
